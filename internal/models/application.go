package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	StatusSaved        ApplicationStatus = "saved"
	StatusApplied      ApplicationStatus = "applied"
	StatusPhoneScreen  ApplicationStatus = "phone_screen"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusFinalRound   ApplicationStatus = "final_round"
	StatusOffer        ApplicationStatus = "offer"
	StatusRejected     ApplicationStatus = "rejected"
	StatusWithdrawn    ApplicationStatus = "withdrawn"
)

// applicationStatuses is the single source of truth for status membership,
// display and the dashboard's "active" subset.
var applicationStatuses = vocabulary[ApplicationStatus]{
	{value: StatusSaved, label: "Saved", color: "gray"},
	{value: StatusApplied, label: "Applied", color: "blue", active: true},
	{value: StatusPhoneScreen, label: "Phone Screen", color: "indigo", active: true},
	{value: StatusInterviewing, label: "Interviewing", color: "purple", active: true},
	{value: StatusFinalRound, label: "Final Round", color: "yellow", active: true},
	{value: StatusOffer, label: "Offer", color: "green"},
	{value: StatusRejected, label: "Rejected", color: "red"},
	{value: StatusWithdrawn, label: "Withdrawn", color: "gray"},
}

// ParseApplicationStatus reports whether raw names a known status.
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	o, ok := applicationStatuses.lookup(ApplicationStatus(raw))
	return o.value, ok
}

func ApplicationStatuses() []ApplicationStatus { return applicationStatuses.values() }

func ApplicationStatusChoices() []Choice { return applicationStatuses.choices() }

// ActiveApplicationStatuses returns the statuses of applications still in flight.
func ActiveApplicationStatuses() []ApplicationStatus {
	var out []ApplicationStatus
	for _, o := range applicationStatuses {
		if o.active {
			out = append(out, o.value)
		}
	}
	return out
}

func (s ApplicationStatus) Valid() bool {
	_, ok := applicationStatuses.lookup(s)
	return ok
}

func (s ApplicationStatus) Label() string { return applicationStatuses.label(s) }

func (s ApplicationStatus) Color() string {
	if o, ok := applicationStatuses.lookup(s); ok {
		return o.color
	}
	return "gray"
}

func (s ApplicationStatus) IsActive() bool {
	o, ok := applicationStatuses.lookup(s)
	return ok && o.active
}

// Application is one tracked job application. UserID is set once at creation
// and scopes every descendant row.
type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Company     string            `gorm:"size:200;not null" json:"company"`
	Role        string            `gorm:"size:200;not null" json:"role"`
	Status      ApplicationStatus `gorm:"size:50;not null;default:'saved';index" json:"status"`
	URL         string            `gorm:"size:500" json:"url"`
	Location    string            `gorm:"size:200" json:"location"`
	SalaryRange string            `gorm:"size:100" json:"salary_range"`
	DateApplied *datatypes.Date   `json:"date_applied"`
	Notes       string            `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `gorm:"index" json:"updated_at"`

	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Interviews []Interview `gorm:"constraint:OnDelete:CASCADE" json:"interviews,omitempty"`
	Documents  []Document  `gorm:"constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	Reminders  []Reminder  `gorm:"constraint:OnDelete:CASCADE" json:"reminders,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Application) BeforeSave(tx *gorm.DB) error {
	if !a.Status.Valid() {
		return fmt.Errorf("application status %q is not a known status", a.Status)
	}
	return nil
}

func (a Application) MarshalJSON() ([]byte, error) {
	type plain Application
	var applied *string
	if a.DateApplied != nil {
		s := time.Time(*a.DateApplied).Format(time.DateOnly)
		applied = &s
	}
	return json.Marshal(struct {
		plain
		DateApplied *string `json:"date_applied"`
		StatusLabel string  `json:"status_label"`
		StatusColor string  `json:"status_color"`
	}{plain(a), applied, a.Status.Label(), a.Status.Color()})
}
