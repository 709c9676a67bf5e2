package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/content"
)

// Status maps an error to the HTTP status it is answered with.
func Status(err error) int {
	var fe *fiber.Error

	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, content.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, content.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, content.ErrUpload):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the fiber error handler. Server errors are logged and
// answered without details, client errors carry their message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := Status(err)

	message := err.Error()
	if code >= fiber.StatusInternalServerError && code != fiber.StatusBadGateway {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		message = fiber.ErrInternalServerError.Message
	}

	c.Status(code)

	if renderErr := c.Render(ErrorTemplate, fiber.Map{
		"Status":  code,
		"Message": message,
	}, BaseLayout); renderErr != nil {
		return c.SendString(message)
	}

	return nil
}
