package documents

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
)

type DocumentForm struct {
	ApplicationID string `json:"application_id" form:"application_id"`
	Filename      string `json:"filename" form:"filename"`
	DocumentType  string `json:"document_type" form:"document_type"`
	URL           string `json:"url" form:"url"`
	Notes         string `json:"notes" form:"notes"`
}

func (f *DocumentForm) normalize() {
	f.ApplicationID = strings.TrimSpace(f.ApplicationID)
	f.Filename = strings.TrimSpace(f.Filename)
	f.DocumentType = strings.TrimSpace(f.DocumentType)
	f.URL = strings.TrimSpace(f.URL)
	f.Notes = strings.TrimSpace(f.Notes)
}

func (f *DocumentForm) values() map[string]string {
	return map[string]string{
		"application_id": f.ApplicationID,
		"filename":       f.Filename,
		"document_type":  f.DocumentType,
		"url":            f.URL,
		"notes":          f.Notes,
	}
}

type FormResponse struct {
	Document     *models.Document     `json:"document"`
	Application  *models.Application  `json:"application"`
	Applications []models.Application `json:"applications"`
	TypeChoices  []models.Choice      `json:"type_choices"`
}

type DocumentResponse struct {
	Document *models.Document `json:"document,omitempty"`
	Message  string           `json:"message"`
	Redirect string           `json:"redirect"`
}
