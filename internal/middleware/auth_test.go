package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Bearer", "", false},
		{"Bearer    ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestBearerPassthrough(t *testing.T) {
	secret := "test-secret-key-12345678901234567890123456789012"

	app := fiber.New()
	app.Get("/test", BearerPassthrough(secret), func(c *fiber.Ctx) error {
		sub, _ := c.Locals("subject").(string)
		ctxSub, _ := c.UserContext().Value(SubjectKey).(string)
		return c.JSON(fiber.Map{"subject": sub, "ctx_subject": ctxSub})
	})

	sign := func(key, sub string, exp time.Duration) string {
		claims := jwt.MapClaims{
			"sub": sub,
			"exp": time.Now().Add(exp).Unix(),
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name            string
		authHeader      string
		expectedSubject string
	}{
		{"Valid token", "Bearer " + sign(secret, "user-123", time.Hour), "user-123"},
		{"Missing header", "", ""},
		{"Wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"Expired token", "Bearer " + sign(secret, "user-123", -time.Hour), ""},
		{"Wrong key", "Bearer " + sign("another-secret-another-secret-123", "user-123", time.Hour), ""},
		{"Garbage token", "Bearer not.a.jwt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			// Never rejects.
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedSubject, body["subject"])
			assert.Equal(t, tt.expectedSubject, body["ctx_subject"])
		})
	}
}

func TestBearerPassthrough_NoSecret(t *testing.T) {
	app := fiber.New()
	app.Get("/test", BearerPassthrough(""), func(c *fiber.Ctx) error {
		assert.Nil(t, c.Locals("subject"))
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
