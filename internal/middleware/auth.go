package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// BearerPassthrough forwards every request regardless of its Authorization header.
// When secret is set and the bearer token is a valid HS256/384/512 JWT, its
// subject is stored in locals ("subject") and in the log context. Invalid or
// missing tokens are ignored.
func BearerPassthrough(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}
		tokenString, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}

		sub, ok := verifiedSubject(tokenString, secret)
		if ok {
			c.Locals("subject", sub)
			c.SetUserContext(context.WithValue(c.UserContext(), SubjectKey, sub))
		}
		return c.Next()
	}
}

func verifiedSubject(tokenString, secret string) (string, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
