package applications

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/respond"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	service *ApplicationService
}

func NewApplicationHandler(service *ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	filter := ListFilter{Status: c.Query("status"), Search: c.Query("search")}
	apps, err := h.service.List(userID, filter)
	if err != nil {
		return respond.Error(c, err, "list applications")
	}

	return c.JSON(ListResponse{
		Applications:  apps,
		StatusChoices: models.ApplicationStatusChoices(),
		CurrentStatus: filter.Status,
		Search:        filter.Search,
	})
}

func (h *ApplicationHandler) New(c *fiber.Ctx) error {
	return c.JSON(FormResponse{StatusChoices: models.ApplicationStatusChoices()})
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	var form ApplicationForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	app, err := h.service.Create(userID, form)
	if err != nil {
		return respond.Error(c, err, "create application")
	}

	return c.Status(fiber.StatusCreated).JSON(StatusResponse{
		Application: app,
		Updated:     true,
		Message:     fmt.Sprintf("Application for %s at %s added!", app.Role, app.Company),
	})
}

func (h *ApplicationHandler) Show(c *fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return respond.Error(c, err, "show application")
	}

	app, err := h.service.Get(userID, id)
	if err != nil {
		return respond.Error(c, err, "show application")
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Edit(c *fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return respond.Error(c, err, "edit application")
	}

	app, err := h.service.Find(userID, id)
	if err != nil {
		return respond.Error(c, err, "edit application")
	}
	return c.JSON(FormResponse{Application: app, StatusChoices: models.ApplicationStatusChoices()})
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return respond.Error(c, err, "update application")
	}

	var form ApplicationForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	app, err := h.service.Update(userID, id, form)
	if err != nil {
		return respond.Error(c, err, "update application")
	}
	return c.JSON(StatusResponse{Application: app, Updated: true, Message: "Application updated!"})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return respond.Error(c, err, "update application status")
	}

	var form StatusForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	app, updated, err := h.service.UpdateStatus(userID, id, form.Status)
	if err != nil {
		return respond.Error(c, err, "update application status")
	}

	resp := StatusResponse{Application: app, Updated: updated}
	if updated {
		resp.Message = "Status updated to " + app.Status.Label()
	}
	return c.JSON(resp)
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	userID, id, err := h.target(c)
	if err != nil {
		return respond.Error(c, err, "delete application")
	}

	app, err := h.service.Delete(userID, id)
	if err != nil {
		return respond.Error(c, err, "delete application")
	}
	return c.JSON(DeleteResponse{
		Message:  fmt.Sprintf("Application for %s at %s deleted.", app.Role, app.Company),
		Redirect: "/applications",
	})
}

func (h *ApplicationHandler) target(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := ownership.ParseID(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, id, nil
}
