package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "dashboard" }

// Models is empty: the dashboard only reads other modules' tables.
func (m *Module) Models() []interface{} { return nil }

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB) {
	handler := NewDashboardHandler(NewDashboardService(db))
	router.Get("/", handler.Index)
}
