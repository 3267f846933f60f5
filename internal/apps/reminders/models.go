package reminders

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
)

// DefaultLeadDays is how far ahead a new reminder's date is prefilled.
const DefaultLeadDays = 7

type ReminderForm struct {
	ApplicationID string `json:"application_id" form:"application_id"`
	Message       string `json:"message" form:"message"`
	RemindOn      string `json:"remind_on" form:"remind_on"`
}

func (f *ReminderForm) normalize() {
	f.ApplicationID = strings.TrimSpace(f.ApplicationID)
	f.Message = strings.TrimSpace(f.Message)
	f.RemindOn = strings.TrimSpace(f.RemindOn)
}

func (f *ReminderForm) values() map[string]string {
	return map[string]string{
		"application_id": f.ApplicationID,
		"message":        f.Message,
		"remind_on":      f.RemindOn,
	}
}

// Groups partitions reminders by their bucket. Completed stays empty unless
// completed reminders were asked for.
type Groups struct {
	Overdue   []models.Reminder `json:"overdue"`
	Today     []models.Reminder `json:"today"`
	Upcoming  []models.Reminder `json:"upcoming"`
	Completed []models.Reminder `json:"completed"`
}

type ListResponse struct {
	Groups
	ShowCompleted bool `json:"show_completed"`
}

type FormResponse struct {
	Reminder     *models.Reminder     `json:"reminder"`
	Application  *models.Application  `json:"application"`
	Applications []models.Application `json:"applications"`
	DefaultDate  string               `json:"default_date,omitempty"`
}

type ReminderResponse struct {
	Reminder *models.Reminder `json:"reminder,omitempty"`
	Message  string           `json:"message"`
	Redirect string           `json:"redirect"`
}
