package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InterviewType string

const (
	InterviewPhoneScreen InterviewType = "phone_screen"
	InterviewTechnical   InterviewType = "technical"
	InterviewBehavioral  InterviewType = "behavioral"
	InterviewOnsite      InterviewType = "onsite"
	InterviewFinal       InterviewType = "final"
	InterviewHR          InterviewType = "hr"
	InterviewOther       InterviewType = "other"
)

var interviewTypes = vocabulary[InterviewType]{
	{value: InterviewPhoneScreen, label: "Phone Screen"},
	{value: InterviewTechnical, label: "Technical"},
	{value: InterviewBehavioral, label: "Behavioral"},
	{value: InterviewOnsite, label: "Onsite"},
	{value: InterviewFinal, label: "Final Round"},
	{value: InterviewHR, label: "HR"},
	{value: InterviewOther, label: "Other"},
}

func ParseInterviewType(raw string) (InterviewType, bool) {
	o, ok := interviewTypes.lookup(InterviewType(raw))
	return o.value, ok
}

func InterviewTypeChoices() []Choice { return interviewTypes.choices() }

func (t InterviewType) Valid() bool {
	_, ok := interviewTypes.lookup(t)
	return ok
}

func (t InterviewType) Label() string { return interviewTypes.label(t) }

type InterviewOutcome string

const (
	OutcomePending   InterviewOutcome = "pending"
	OutcomePassed    InterviewOutcome = "passed"
	OutcomeFailed    InterviewOutcome = "failed"
	OutcomeCancelled InterviewOutcome = "cancelled"
)

var interviewOutcomes = vocabulary[InterviewOutcome]{
	{value: OutcomePending, label: "Pending"},
	{value: OutcomePassed, label: "Passed"},
	{value: OutcomeFailed, label: "Failed"},
	{value: OutcomeCancelled, label: "Cancelled"},
}

func ParseInterviewOutcome(raw string) (InterviewOutcome, bool) {
	o, ok := interviewOutcomes.lookup(InterviewOutcome(raw))
	return o.value, ok
}

func InterviewOutcomeChoices() []Choice { return interviewOutcomes.choices() }

func (o InterviewOutcome) Valid() bool {
	_, ok := interviewOutcomes.lookup(o)
	return ok
}

func (o InterviewOutcome) Label() string { return interviewOutcomes.label(o) }

const DefaultInterviewMinutes = 60

type Interview struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"application_id"`
	InterviewType   InterviewType    `gorm:"size:50;not null;default:'other'" json:"interview_type"`
	ScheduledAt     time.Time        `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes int              `gorm:"not null;default:60" json:"duration_minutes"`
	Interviewer     string           `gorm:"size:200" json:"interviewer"`
	Location        string           `gorm:"size:300" json:"location"`
	Notes           string           `gorm:"type:text" json:"notes"`
	Outcome         InterviewOutcome `gorm:"size:50;not null;default:'pending';index" json:"outcome"`
	Feedback        string           `gorm:"type:text" json:"feedback"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`

	asOf time.Time
}

// IsUpcoming reports whether the interview is still ahead of now and undecided.
func (iv *Interview) IsUpcoming(now time.Time) bool {
	return iv.ScheduledAt.After(now) && iv.Outcome == OutcomePending
}

func (iv *Interview) BeforeCreate(tx *gorm.DB) error {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	return nil
}

func (iv *Interview) BeforeSave(tx *gorm.DB) error {
	if !iv.InterviewType.Valid() {
		return fmt.Errorf("interview type %q is not a known type", iv.InterviewType)
	}
	if !iv.Outcome.Valid() {
		return fmt.Errorf("interview outcome %q is not a known outcome", iv.Outcome)
	}
	return nil
}

func (iv *Interview) AfterFind(tx *gorm.DB) error {
	iv.asOf = tx.NowFunc()
	return nil
}

func (iv *Interview) AfterSave(tx *gorm.DB) error {
	iv.asOf = tx.NowFunc()
	return nil
}

func (iv Interview) MarshalJSON() ([]byte, error) {
	type plain Interview
	return json.Marshal(struct {
		plain
		TypeLabel    string `json:"type_label"`
		OutcomeLabel string `json:"outcome_label"`
		IsUpcoming   bool   `json:"is_upcoming"`
	}{plain(iv), iv.InterviewType.Label(), iv.Outcome.Label(), iv.IsUpcoming(clockOr(iv.asOf))})
}
