package dashboard

import (
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/respond"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service *DashboardService
}

func NewDashboardHandler(service *DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	summary, err := h.service.Summary(userID)
	if err != nil {
		return respond.Error(c, err, "load dashboard")
	}
	return c.JSON(summary)
}
