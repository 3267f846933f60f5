package apps

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Module is one feature area of the tracker (applications, interviews, ...).
type Module interface {
	// ID names the module in logs.
	ID() string

	// Models returns the GORM model pointers this module owns, for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the module on a router that already requires a
	// logged-in user.
	RegisterRoutes(router fiber.Router, db *gorm.DB)
}
