package dashboard

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
)

// Limit bounds every list on the dashboard.
const Limit = 5

// UpcomingWindow is how far ahead interviews count as upcoming.
const UpcomingWindow = 7 * 24 * time.Hour

type Stat struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

type Counts struct {
	Total    int64                              `json:"total"`
	Active   int64                              `json:"active"`
	Offer    int64                              `json:"offer"`
	Rejected int64                              `json:"rejected"`
	ByStatus map[models.ApplicationStatus]int64 `json:"status_counts"`
}

type Summary struct {
	Counts
	Stats              []Stat               `json:"stats"`
	DueReminders       []models.Reminder    `json:"due_reminders"`
	UpcomingInterviews []models.Interview   `json:"upcoming_interviews"`
	RecentApplications []models.Application `json:"recent_applications"`
	StatusChoices      []models.Choice      `json:"status_choices"`
}
