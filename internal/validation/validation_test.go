package validation

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       string
		limit      string
		maxLimit   int
		want       Pagination
		wantFields []string
	}{
		{name: "defaults", want: Pagination{Page: 1, Limit: 10}},
		{name: "explicit", page: "3", limit: "4", want: Pagination{Page: 3, Limit: 4}},
		{name: "whitespace trimmed", page: " 2 ", limit: " 5", want: Pagination{Page: 2, Limit: 5}},
		{name: "non numeric page", page: "abc", want: Pagination{Page: 1, Limit: 10}, wantFields: []string{"page"}},
		{name: "trailing garbage", limit: "10abc", want: Pagination{Page: 1, Limit: 10}, wantFields: []string{"limit"}},
		{name: "zero page", page: "0", want: Pagination{Page: 1, Limit: 10}, wantFields: []string{"page"}},
		{name: "negative limit", limit: "-5", want: Pagination{Page: 1, Limit: 10}, wantFields: []string{"limit"}},
		{name: "both invalid", page: "x", limit: "y", want: Pagination{Page: 1, Limit: 10}, wantFields: []string{"page", "limit"}},
		{name: "clamped", limit: "5000", maxLimit: 100, want: Pagination{Page: 1, Limit: 100}},
		{name: "no clamp without max", limit: "5000", want: Pagination{Page: 1, Limit: 5000}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, errs := ParsePagination(tc.page, tc.limit, tc.maxLimit)
			assert.Equal(t, tc.want, got)
			assert.Len(t, errs, len(tc.wantFields))
			for _, f := range tc.wantFields {
				assert.NotEmpty(t, errs[f], "expected error on %s", f)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 8, Pagination{Page: 3, Limit: 4}.Offset())
}

func TestParsePagination_HugePageSaturatesOffset(t *testing.T) {
	t.Parallel()

	p, errs := ParsePagination(strconv.Itoa(math.MaxInt), "10", 100)
	assert.True(t, errs.Empty())
	assert.Equal(t, math.MaxInt, p.Page)
	assert.Equal(t, math.MaxInt, p.Offset())
	assert.Positive(t, p.Offset())
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, errs := ParseID("  abc-1 ", "userId", "Invalid user ID")
	assert.Equal(t, "abc-1", id)
	assert.True(t, errs.Empty())

	_, errs = ParseID("   ", "postId", "Post ID is required")
	assert.Equal(t, []string{"Post ID is required"}, errs["postId"])
}

func TestParseCreatePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		want       CreatePost
		wantFields []string
	}{
		{
			name: "valid and trimmed",
			body: `{"userId":" u1 ","title":"  Hello ","body":"World  "}`,
			want: CreatePost{UserID: "u1", Title: "Hello", Body: "World"},
		},
		{
			name:       "empty title",
			body:       `{"userId":"u1","title":"","body":"World"}`,
			want:       CreatePost{UserID: "u1", Body: "World"},
			wantFields: []string{"title"},
		},
		{
			name:       "whitespace title and body",
			body:       `{"userId":"u1","title":"   ","body":"\n\t"}`,
			want:       CreatePost{UserID: "u1"},
			wantFields: []string{"title", "body"},
		},
		{
			name:       "all missing",
			body:       `{}`,
			wantFields: []string{"userId", "title", "body"},
		},
		{
			name:       "wrong type",
			body:       `{"userId":42,"title":"t","body":"b"}`,
			want:       CreatePost{Title: "t", Body: "b"},
			wantFields: []string{"userId"},
		},
		{name: "not an object", body: `["a"]`, wantFields: []string{RootField}},
		{name: "malformed json", body: `{"title":`, wantFields: []string{RootField}},
		{name: "null", body: `null`, wantFields: []string{RootField}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, errs := ParseCreatePost([]byte(tc.body))
			assert.Equal(t, tc.want, got)
			assert.Len(t, errs, len(tc.wantFields))
			for _, f := range tc.wantFields {
				assert.NotEmpty(t, errs[f], "expected error on %s", f)
			}
		})
	}
}
