package reminders

import (
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/forms"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/respond"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const indexPath = "/reminders"

type ReminderHandler struct {
	service *ReminderService
}

func NewReminderHandler(service *ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

func (h *ReminderHandler) List(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	showCompleted := forms.Bool(c.Query("completed"))
	reminders, err := h.service.List(userID, showCompleted)
	if err != nil {
		return respond.Error(c, err, "list reminders")
	}

	return c.JSON(ListResponse{
		Groups:        Group(reminders, h.service.Today(), showCompleted),
		ShowCompleted: showCompleted,
	})
}

func (h *ReminderHandler) New(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	resp, err := h.service.NewForm(userID, c.Query("application_id"))
	if err != nil {
		return respond.Error(c, err, "new reminder form")
	}
	return c.JSON(resp)
}

func (h *ReminderHandler) Create(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	var form ReminderForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	r, err := h.service.Create(userID, form)
	if err != nil {
		return respond.Error(c, err, "create reminder")
	}
	return c.Status(fiber.StatusCreated).JSON(ReminderResponse{
		Reminder: r,
		Message:  "Reminder set!",
		Redirect: "/applications/" + r.ApplicationID.String(),
	})
}

func (h *ReminderHandler) Edit(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "edit reminder")
	}

	resp, err := h.service.EditForm(userID, id)
	if err != nil {
		return respond.Error(c, err, "edit reminder")
	}
	return c.JSON(resp)
}

func (h *ReminderHandler) Update(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "update reminder")
	}

	var form ReminderForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	r, err := h.service.Update(userID, id, form)
	if err != nil {
		return respond.Error(c, err, "update reminder")
	}
	return c.JSON(ReminderResponse{Reminder: r, Message: "Reminder updated!", Redirect: indexPath})
}

func (h *ReminderHandler) Complete(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "complete reminder")
	}

	r, err := h.service.Complete(userID, id)
	if err != nil {
		return respond.Error(c, err, "complete reminder")
	}
	return c.JSON(ReminderResponse{Reminder: r, Message: "Reminder marked as complete.", Redirect: back(c)})
}

func (h *ReminderHandler) Delete(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "delete reminder")
	}

	if _, err := h.service.Delete(userID, id); err != nil {
		return respond.Error(c, err, "delete reminder")
	}
	return c.JSON(ReminderResponse{Message: "Reminder deleted.", Redirect: back(c)})
}

// back sends the client to the page it came from, or the reminder list.
func back(c *fiber.Ctx) string {
	if ref := c.Get(fiber.HeaderReferer); ref != "" {
		return ref
	}
	return indexPath
}

func target(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
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
