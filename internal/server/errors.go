package server

import (
	"errors"
	"log/slog"
	"runtime/debug"
	"time"

	"lema/internal/middleware"
	"lema/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FallbackError is the envelope for failures no handler turned into a response.
type FallbackError struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
	Stack     string `json:"stack,omitempty"`
}

// ErrorHandler is the single fallback responder for errors returned by
// handlers and middleware. Stack detail is included only when exposeStack is set.
func ErrorHandler(exposeStack bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		body := FallbackError{
			Status:    fiber.StatusInternalServerError,
			Message:   "Internal Server Error",
			Method:    c.Method(),
			Path:      c.OriginalURL(),
			Timestamp: models.FormatCreatedAt(time.Now()),
		}

		var stack []byte
		var fe *fiber.Error
		var appErr *models.AppError
		switch {
		case errors.As(err, &fe):
			body.Status = fe.Code
			body.Message = fe.Message
		case errors.As(err, &appErr):
			if appErr.Status != 0 {
				body.Status = appErr.Status
			}
			body.Message = appErr.Message
			stack = appErr.Stack
		default:
			if exposeStack {
				body.Message = err.Error()
			}
		}

		if exposeStack && body.Status >= fiber.StatusInternalServerError {
			if stack == nil {
				stack = debug.Stack()
			}
			body.Stack = err.Error() + "\n" + string(stack)
		}

		attrs := []any{
			slog.Int("status", body.Status),
			slog.String("method", body.Method),
			slog.String("path", body.Path),
			slog.String("error", err.Error()),
		}
		if body.Status >= fiber.StatusInternalServerError {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled request error", attrs...)
		} else {
			middleware.Logger.WarnContext(c.UserContext(), "request rejected", attrs...)
		}

		return c.Status(body.Status).JSON(body)
	}
}
