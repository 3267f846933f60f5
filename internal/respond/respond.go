// Package respond maps service errors onto HTTP responses.
package respond

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/forms"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/gofiber/fiber/v2"
)

const notFoundMessage = "Not found"

// NotFound is the only answer for missing rows and rows owned by another user.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: notFoundMessage,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func Invalid(c *fiber.Ctx, verr *forms.ValidationError) error {
	values := verr.Values
	if values == nil {
		values = map[string]string{}
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
		Error:   true,
		Message: verr.Error(),
		Errors:  verr.Messages,
		Values:  values,
	})
}

// Error renders known failures and hands anything else to the app's error
// handler, annotated with what was being attempted.
func Error(c *fiber.Ctx, err error, action string) error {
	var verr *forms.ValidationError
	switch {
	case errors.Is(err, ownership.ErrNotFound):
		return NotFound(c)
	case errors.Is(err, ownership.ErrNoUser):
		return Unauthorized(c, "Unauthorized")
	case errors.As(err, &verr):
		return Invalid(c, verr)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
