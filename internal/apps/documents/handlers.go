package documents

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/respond"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DocumentHandler struct {
	service *DocumentService
}

func NewDocumentHandler(service *DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

func (h *DocumentHandler) New(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	resp, err := h.service.NewForm(userID, c.Query("application_id"))
	if err != nil {
		return respond.Error(c, err, "new document form")
	}
	return c.JSON(resp)
}

func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	userID, err := ownership.GetUserID(c)
	if err != nil {
		return respond.Unauthorized(c, "Unauthorized")
	}

	var form DocumentForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	doc, err := h.service.Create(userID, form)
	if err != nil {
		return respond.Error(c, err, "create document")
	}
	return c.Status(fiber.StatusCreated).JSON(DocumentResponse{
		Document: doc,
		Message:  fmt.Sprintf("Document %q added!", doc.Filename),
		Redirect: "/applications/" + doc.ApplicationID.String(),
	})
}

func (h *DocumentHandler) Show(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "show document")
	}

	doc, err := h.service.Get(userID, id)
	if err != nil {
		return respond.Error(c, err, "show document")
	}
	return c.JSON(doc)
}

func (h *DocumentHandler) Edit(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "edit document")
	}

	resp, err := h.service.EditForm(userID, id)
	if err != nil {
		return respond.Error(c, err, "edit document")
	}
	return c.JSON(resp)
}

func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "update document")
	}

	var form DocumentForm
	if err := c.BodyParser(&form); err != nil {
		return respond.BadRequest(c, "Invalid request body")
	}

	doc, err := h.service.Update(userID, id, form)
	if err != nil {
		return respond.Error(c, err, "update document")
	}
	return c.JSON(DocumentResponse{
		Document: doc,
		Message:  "Document updated!",
		Redirect: "/applications/" + doc.ApplicationID.String(),
	})
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	userID, id, err := target(c)
	if err != nil {
		return respond.Error(c, err, "delete document")
	}

	doc, err := h.service.Delete(userID, id)
	if err != nil {
		return respond.Error(c, err, "delete document")
	}
	return c.JSON(DocumentResponse{
		Message:  "Document removed.",
		Redirect: "/applications/" + doc.ApplicationID.String(),
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
