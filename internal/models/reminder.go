package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Reminder struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"application_id"`
	RemindOn      datatypes.Date `gorm:"not null;index" json:"remind_on"`
	Message       string         `gorm:"size:500;not null" json:"message"`
	Completed     bool           `gorm:"not null;default:false;index" json:"completed"`
	CreatedAt     time.Time      `json:"created_at"`

	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`

	// asOf is the database clock when the row was loaded or saved.
	asOf time.Time
}

// ReminderBucket is the read-time grouping of a reminder relative to today.
type ReminderBucket string

const (
	BucketOverdue   ReminderBucket = "overdue"
	BucketDueToday  ReminderBucket = "today"
	BucketUpcoming  ReminderBucket = "upcoming"
	BucketCompleted ReminderBucket = "completed"
)

const secondsPerDay = 24 * 60 * 60

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// clockOr falls back to wall time for values never read from or written to
// the database.
func clockOr(asOf time.Time) time.Time {
	if asOf.IsZero() {
		return time.Now().UTC()
	}
	return asOf
}

func (r *Reminder) day() time.Time {
	y, m, d := time.Time(r.RemindOn).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Bucket places the reminder in exactly one group for the given day.
func (r *Reminder) Bucket(today time.Time) ReminderBucket {
	if r.Completed {
		return BucketCompleted
	}
	on, ref := r.day(), Day(today)
	switch {
	case on.Before(ref):
		return BucketOverdue
	case on.Equal(ref):
		return BucketDueToday
	default:
		return BucketUpcoming
	}
}

func (r *Reminder) IsOverdue(today time.Time) bool {
	return r.Bucket(today) == BucketOverdue
}

func (r *Reminder) IsDue(today time.Time) bool {
	b := r.Bucket(today)
	return b == BucketOverdue || b == BucketDueToday
}

// DaysUntil is nil once the reminder is completed.
func (r *Reminder) DaysUntil(today time.Time) *int {
	if r.Completed {
		return nil
	}
	// whole days between two UTC midnights; year 9999 overflows time.Duration
	days := int((r.day().Unix() - Day(today).Unix()) / secondsPerDay)
	return &days
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Reminder) AfterFind(tx *gorm.DB) error {
	r.asOf = tx.NowFunc()
	return nil
}

func (r *Reminder) AfterSave(tx *gorm.DB) error {
	r.asOf = tx.NowFunc()
	return nil
}

func (r Reminder) MarshalJSON() ([]byte, error) {
	type plain Reminder
	today := clockOr(r.asOf)
	return json.Marshal(struct {
		plain
		RemindOn  string `json:"remind_on"`
		IsDue     bool   `json:"is_due"`
		IsOverdue bool   `json:"is_overdue"`
		DaysUntil *int   `json:"days_until"`
	}{plain(r), time.Time(r.RemindOn).Format(time.DateOnly), r.IsDue(today), r.IsOverdue(today), r.DaysUntil(today)})
}
