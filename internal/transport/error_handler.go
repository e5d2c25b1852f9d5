package transport

import (
	"errors"

	"github.com/anandaputra/layanan-tracker/internal/domain"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler maps domain errors to HTTP statuses. Anything unmapped is
// logged with full detail and answered with an opaque 500 so internals never
// leak to clients.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		var rateErr *domain.RateLimitError
		if errors.As(err, &rateErr) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":             rateErr.Error(),
				"retryAfterMinutes": rateErr.RetryAfterMinutes(),
			})
		}

		switch {
		case errors.Is(err, domain.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		logger.Error("request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}
