package interviews

import (
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "interviews" }

func (m *Module) Models() []interface{} {
	return []interface{}{&models.Interview{}}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB) {
	handler := NewInterviewHandler(NewInterviewService(db))

	r := router.Group("/interviews")
	r.Get("/new", handler.New)
	r.Post("/create", handler.Create)
	r.Get("/:id", handler.Show)
	r.Get("/:id/edit", handler.Edit)
	r.Post("/:id/edit", handler.Update)
	r.Put("/:id", handler.Update)
	r.Post("/:id/outcome", handler.UpdateOutcome)
	r.Post("/:id/delete", handler.Delete)
	r.Delete("/:id", handler.Delete)
}
