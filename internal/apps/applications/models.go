package applications

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
)

// ApplicationForm is the submitted application form, all fields untyped.
type ApplicationForm struct {
	Company     string `json:"company" form:"company"`
	Role        string `json:"role" form:"role"`
	Status      string `json:"status" form:"status"`
	URL         string `json:"url" form:"url"`
	Location    string `json:"location" form:"location"`
	SalaryRange string `json:"salary_range" form:"salary_range"`
	DateApplied string `json:"date_applied" form:"date_applied"`
	Notes       string `json:"notes" form:"notes"`
}

func (f *ApplicationForm) normalize() {
	f.Company = strings.TrimSpace(f.Company)
	f.Role = strings.TrimSpace(f.Role)
	f.Status = strings.TrimSpace(f.Status)
	f.URL = strings.TrimSpace(f.URL)
	f.Location = strings.TrimSpace(f.Location)
	f.SalaryRange = strings.TrimSpace(f.SalaryRange)
	f.DateApplied = strings.TrimSpace(f.DateApplied)
	f.Notes = strings.TrimSpace(f.Notes)
}

func (f *ApplicationForm) values() map[string]string {
	return map[string]string{
		"company":      f.Company,
		"role":         f.Role,
		"status":       f.Status,
		"url":          f.URL,
		"location":     f.Location,
		"salary_range": f.SalaryRange,
		"date_applied": f.DateApplied,
		"notes":        f.Notes,
	}
}

type StatusForm struct {
	Status string `json:"status" form:"status"`
}

// ListFilter narrows the application list.
type ListFilter struct {
	Status string
	Search string
}

type ListResponse struct {
	Applications  []models.Application `json:"applications"`
	StatusChoices []models.Choice      `json:"status_choices"`
	CurrentStatus string               `json:"current_status"`
	Search        string               `json:"search"`
}

type FormResponse struct {
	Application   *models.Application `json:"application"`
	StatusChoices []models.Choice     `json:"status_choices"`
}

type StatusResponse struct {
	Application *models.Application `json:"application"`
	Updated     bool                `json:"updated"`
	Message     string              `json:"message,omitempty"`
}

type DeleteResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}
