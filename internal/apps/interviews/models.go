package interviews

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
)

// InterviewForm carries the separately submitted date and time parts.
type InterviewForm struct {
	ApplicationID   string `json:"application_id" form:"application_id"`
	InterviewType   string `json:"interview_type" form:"interview_type"`
	ScheduledDate   string `json:"scheduled_date" form:"scheduled_date"`
	ScheduledTime   string `json:"scheduled_time" form:"scheduled_time"`
	DurationMinutes string `json:"duration_minutes" form:"duration_minutes"`
	Interviewer     string `json:"interviewer" form:"interviewer"`
	Location        string `json:"location" form:"location"`
	Notes           string `json:"notes" form:"notes"`
	Outcome         string `json:"outcome" form:"outcome"`
	Feedback        string `json:"feedback" form:"feedback"`
}

func (f *InterviewForm) normalize() {
	f.ApplicationID = strings.TrimSpace(f.ApplicationID)
	f.InterviewType = strings.TrimSpace(f.InterviewType)
	f.ScheduledDate = strings.TrimSpace(f.ScheduledDate)
	f.ScheduledTime = strings.TrimSpace(f.ScheduledTime)
	f.DurationMinutes = strings.TrimSpace(f.DurationMinutes)
	f.Interviewer = strings.TrimSpace(f.Interviewer)
	f.Location = strings.TrimSpace(f.Location)
	f.Notes = strings.TrimSpace(f.Notes)
	f.Outcome = strings.TrimSpace(f.Outcome)
	f.Feedback = strings.TrimSpace(f.Feedback)
}

func (f *InterviewForm) values() map[string]string {
	return map[string]string{
		"application_id":   f.ApplicationID,
		"interview_type":   f.InterviewType,
		"scheduled_date":   f.ScheduledDate,
		"scheduled_time":   f.ScheduledTime,
		"duration_minutes": f.DurationMinutes,
		"interviewer":      f.Interviewer,
		"location":         f.Location,
		"notes":            f.Notes,
		"outcome":          f.Outcome,
		"feedback":         f.Feedback,
	}
}

type OutcomeForm struct {
	Outcome string `json:"outcome" form:"outcome"`
}

// FormResponse is everything the interview form needs. Applications is only
// filled for new interviews; an existing one cannot move between applications.
type FormResponse struct {
	Interview      *models.Interview    `json:"interview"`
	Application    *models.Application  `json:"application"`
	Applications   []models.Application `json:"applications"`
	TypeChoices    []models.Choice      `json:"type_choices"`
	OutcomeChoices []models.Choice      `json:"outcome_choices"`
}

type InterviewResponse struct {
	Interview *models.Interview `json:"interview"`
	Updated   bool              `json:"updated"`
	Message   string            `json:"message,omitempty"`
	Redirect  string            `json:"redirect,omitempty"`
}
