package httpapi

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/rs/zerolog"
)

// NewErrorHandler builds the centralized responder: every handler
// error funnels here and becomes a status code plus a JSON {message}
// body. Internal details are logged, never returned.
func NewErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			status := statusFromCategory(richErr.Category)
			message := richErr.Message

			if status == fiber.StatusInternalServerError {
				logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
				message = "Internal Server Error"
			}

			return c.Status(status).JSON(fiber.Map{"message": message})
		}

		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
	}
}

func statusFromCategory(category errors.Category) int {
	switch category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
