package main

import (
	"testing"

	"lema/docs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec_BuiltInDocument(t *testing.T) {
	spec, err := parseSpec([]byte(docs.SwaggerInfo.ReadDoc()))
	require.NoError(t, err)

	for _, path := range []string{"/users", "/users/{userId}", "/users/{userId}/posts", "/posts", "/posts/{postId}"} {
		assert.Contains(t, spec.Paths, path)
	}
	assert.Contains(t, spec.Paths["/posts"]["post"].Responses, "201")
	assert.Contains(t, spec.Paths["/users/{userId}"]["get"].Responses, "404")
	assert.Empty(t, compare(spec, spec))
}

func TestCompare_ReportsRemovals(t *testing.T) {
	base, err := parseSpec([]byte(`
paths:
  /users:
    get:
      responses: {"200": {}, "400": {}}
  /users/{userId}:
    get:
      responses: {"200": {}, "404": {}}
  /posts/{postId}:
    delete:
      responses: {"200": {}}
    parameters: []
`))
	require.NoError(t, err)

	revision, err := parseSpec([]byte(`{"paths": {
		"/users": {"get": {"responses": {"200": {}}}},
		"/posts/{postId}": {"patch": {"responses": {"200": {}}}}
	}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"removed operation: DELETE /posts/{postId}",
		"removed path: /users/{userId}",
		"removed response code: GET /users -> 400",
	}, compare(base, revision))
}

func TestParseSpec_MissingPaths(t *testing.T) {
	_, err := parseSpec([]byte(`swagger: "2.0"`))
	assert.Error(t, err)
}
