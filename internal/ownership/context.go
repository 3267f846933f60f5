package ownership

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

var ErrNoUser = errors.New("no authenticated user in context")

// SetUserID records the authenticated user for the rest of the request.
func SetUserID(c *fiber.Ctx, userID uuid.UUID) {
	c.Locals(userIDKey, userID)
}

// GetUserID returns the user set by the session middleware.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrNoUser
	}
	return userID, nil
}
