package applications

import (
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "applications" }

func (m *Module) Models() []interface{} {
	return []interface{}{&models.Application{}}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB) {
	handler := NewApplicationHandler(NewApplicationService(db))

	r := router.Group("/applications")
	r.Get("/", handler.List)
	r.Get("/new", handler.New)
	r.Post("/", handler.Create)
	r.Post("/new", handler.Create)
	r.Get("/:id", handler.Show)
	r.Get("/:id/edit", handler.Edit)
	r.Post("/:id/edit", handler.Update)
	r.Put("/:id/edit", handler.Update)
	r.Put("/:id", handler.Update)
	r.Post("/:id/delete", handler.Delete)
	r.Delete("/:id", handler.Delete)
	r.Post("/:id/status", handler.UpdateStatus)
}
