package handlers

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/database"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ping func() error
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{ping: database.Ping}
}

// NewHealthHandlerWithPing swaps the database probe, for tests.
func NewHealthHandlerWithPing(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Check is a fixed liveness payload.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "healthy"})
}

// Ready also probes the database.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	resp := dto.ReadinessResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "ok",
	}
	if err := h.ping(); err != nil {
		slog.Error("readiness probe failed", "action", "health_ready", "error", err)
		resp.Status = "unhealthy"
		resp.DB = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
