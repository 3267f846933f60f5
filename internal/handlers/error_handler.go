package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide fallback for errors handlers did not render
// themselves. Details of 5xx errors stay in the logs and Sentry.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err.Error(),
		}
		if userID, uerr := ownership.GetUserID(c); uerr == nil {
			attrs = append(attrs, "user_id", userID.String())
		}
		slog.Error("unhandled server error", attrs...)

		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
