package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tintuc/newsapi/internal/errs"
	"github.com/tintuc/newsapi/internal/logger"
)

// ErrorHandler translates taxonomy errors into HTTP responses.
// Validation, conflict and not-found errors carry their message to the
// caller; anything else is logged and answered with a generic server
// error so internals never leak.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrValidation):
		code = fiber.StatusBadRequest
	case errors.Is(err, errs.ErrConflict):
		code = fiber.StatusConflict
	case errors.Is(err, errs.ErrNotFound):
		code = fiber.StatusNotFound
	}
	if code != 0 {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"message": errs.Message(err),
		})
	}

	code = fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": "Có lỗi xảy ra, vui lòng thử lại sau.",
	})
}
