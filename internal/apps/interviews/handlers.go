package interviews

import (
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/respond"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InterviewHandler struct {
	service *InterviewService
}

func NewInterviewHandler(service *InterviewService) *InterviewHandler {
	return &InterviewHandler{service: service}
}

func (h *InterviewHandler) New(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	resp, err := h.service.NewForm(userID, c.Query("application_id"))
	if err != nil {
		return respond.Error(c, err, "new interview form")
	}
	return c.JSON(resp)
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	var form InterviewForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	iv, err := h.service.Create(userID, form)
	if err != nil {
		return respond.Error(c, err, "create interview")
	}
	return c.Status(fiber.StatusCreated).JSON(InterviewResponse{
		Interview: iv,
		Updated:   true,
		Message:   iv.InterviewType.Label() + " interview scheduled!",
		Redirect:  "/applications/" + iv.ApplicationID.String(),
	})
}

func (h *InterviewHandler) Show(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "show interview")
	}

	iv, err := h.service.Get(userID, id)
	if err != nil {
		return respond.Error(c, err, "show interview")
	}
	return c.JSON(iv)
}

func (h *InterviewHandler) Edit(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "edit interview")
	}

	resp, err := h.service.EditForm(userID, id)
	if err != nil {
		return respond.Error(c, err, "edit interview")
	}
	return c.JSON(resp)
}

func (h *InterviewHandler) Update(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "update interview")
	}

	var form InterviewForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	iv, err := h.service.Update(userID, id, form)
	if err != nil {
		return respond.Error(c, err, "update interview")
	}
	return c.JSON(InterviewResponse{
		Interview: iv,
		Updated:   true,
		Message:   "Interview updated!",
		Redirect:  "/applications/" + iv.ApplicationID.String(),
	})
}

func (h *InterviewHandler) UpdateOutcome(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "update interview outcome")
	}

	var form OutcomeForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	iv, updated, err := h.service.UpdateOutcome(userID, id, form.Outcome)
	if err != nil {
		return respond.Error(c, err, "update interview outcome")
	}

	resp := InterviewResponse{Interview: iv, Updated: updated}
	if updated {
		resp.Message = "Outcome set to " + iv.Outcome.Label()
	}
	return c.JSON(resp)
}

func (h *InterviewHandler) Delete(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "delete interview")
	}

	iv, err := h.service.Delete(userID, id)
	if err != nil {
		return respond.Error(c, err, "delete interview")
	}
	return c.JSON(InterviewResponse{
		Message:  "Interview deleted.",
		Redirect: "/applications/" + iv.ApplicationID.String(),
	})
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
