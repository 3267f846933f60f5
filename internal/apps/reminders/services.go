package reminders

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/forms"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgMessageRequired = "Message is required."
	msgDateRequired    = "Date is required."
	msgDateInvalid     = "Invalid date format."
)

type ReminderService struct {
	db *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

// Today is the calendar day every bucket is computed against.
func (s *ReminderService) Today() time.Time {
	return models.Day(s.db.NowFunc())
}

// List returns the user's reminders ordered by date. Completed reminders are
// filtered out in the query unless includeCompleted is set.
func (s *ReminderService) List(userID uuid.UUID, includeCompleted bool) ([]models.Reminder, error) {
	q := s.db.Model(&models.Reminder{}).
		Scopes(ownership.ThroughApplication("reminders", userID)).
		Preload("Application")
	if !includeCompleted {
		q = q.Where("reminders.completed = ?", false)
	}

	reminders := []models.Reminder{}
	err := q.Order("reminders.remind_on ASC").Find(&reminders).Error
	return reminders, err
}

// Group splits reminders into disjoint buckets relative to today. Completed
// reminders are dropped unless includeCompleted is set.
func Group(reminders []models.Reminder, today time.Time, includeCompleted bool) Groups {
	g := Groups{
		Overdue:   []models.Reminder{},
		Today:     []models.Reminder{},
		Upcoming:  []models.Reminder{},
		Completed: []models.Reminder{},
	}
	for _, r := range reminders {
		switch r.Bucket(today) {
		case models.BucketOverdue:
			g.Overdue = append(g.Overdue, r)
		case models.BucketDueToday:
			g.Today = append(g.Today, r)
		case models.BucketUpcoming:
			g.Upcoming = append(g.Upcoming, r)
		case models.BucketCompleted:
			if includeCompleted {
				g.Completed = append(g.Completed, r)
			}
		}
	}
	return g
}

func (s *ReminderService) NewForm(userID uuid.UUID, rawAppID string) (*FormResponse, error) {
	resp := &FormResponse{
		DefaultDate: s.Today().AddDate(0, 0, DefaultLeadDays).Format(forms.DateLayout),
	}
	if rawAppID != "" {
		appID, err := ownership.ParseID(rawAppID)
		if err != nil {
			return nil, err
		}
		if resp.Application, err = ownership.FindApplication(s.db, userID, appID); err != nil {
			return nil, err
		}
	}

	apps, err := ownership.ListApplications(s.db, userID)
	if err != nil {
		return nil, err
	}
	resp.Applications = apps
	return resp, nil
}

func (s *ReminderService) EditForm(userID, id uuid.UUID) (*FormResponse, error) {
	r, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	return &FormResponse{Reminder: r, Application: r.Application, Applications: []models.Application{}}, nil
}

func (s *ReminderService) Get(userID, id uuid.UUID) (*models.Reminder, error) {
	var r models.Reminder
	err := s.db.Model(&models.Reminder{}).
		Scopes(ownership.ThroughApplication("reminders", userID)).
		Preload("Application").
		Where("reminders.id = ?", id).
		First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ownership.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *ReminderService) Create(userID uuid.UUID, form ReminderForm) (*models.Reminder, error) {
	form.normalize()

	appID, err := ownership.ParseID(form.ApplicationID)
	if err != nil {
		return nil, err
	}
	app, err := ownership.FindApplication(s.db, userID, appID)
	if err != nil {
		return nil, err
	}

	if form.Message == "" {
		return nil, forms.Invalid(msgMessageRequired, form.values())
	}
	if form.RemindOn == "" {
		return nil, forms.Invalid(msgDateRequired, form.values())
	}
	on, err := forms.ParseDate(form.RemindOn)
	if err != nil {
		return nil, forms.Invalid(msgDateInvalid, form.values())
	}

	r := models.Reminder{
		ApplicationID: app.ID,
		Message:       form.Message,
		RemindOn:      datatypes.Date(on),
	}
	if err := s.db.Omit(clause.Associations).Create(&r).Error; err != nil {
		return nil, err
	}
	r.Application = app
	return &r, nil
}

// Update rewrites the message. A blank date keeps the stored one; a
// malformed date rejects the whole edit.
func (s *ReminderService) Update(userID, id uuid.UUID, form ReminderForm) (*models.Reminder, error) {
	form.normalize()
	if form.Message == "" {
		return nil, forms.Invalid(msgMessageRequired, form.values())
	}

	var r *models.Reminder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		r, err = ownership.FindReminder(tx, userID, id)
		if err != nil {
			return err
		}

		r.Message = form.Message
		if form.RemindOn != "" {
			on, err := forms.ParseDate(form.RemindOn)
			if err != nil {
				return forms.Invalid(msgDateInvalid, form.values())
			}
			r.RemindOn = datatypes.Date(on)
		}
		return save(tx, userID, r, "message", "remind_on")
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Complete marks the reminder done. Completing it again changes nothing.
func (s *ReminderService) Complete(userID, id uuid.UUID) (*models.Reminder, error) {
	var r *models.Reminder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		r, err = ownership.FindReminder(tx, userID, id)
		if err != nil {
			return err
		}
		if r.Completed {
			return nil
		}
		r.Completed = true
		return save(tx, userID, r, "completed")
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReminderService) Delete(userID, id uuid.UUID) (*models.Reminder, error) {
	var r *models.Reminder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		r, err = ownership.FindReminder(tx, userID, id)
		if err != nil {
			return err
		}
		return tx.Delete(&models.Reminder{}, "id = ?", r.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func save(tx *gorm.DB, userID uuid.UUID, r *models.Reminder, columns ...string) error {
	res := tx.Model(r).
		Omit(clause.Associations).
		Where("application_id IN (?)", tx.Model(&models.Application{}).Select("id").Where("user_id = ?", userID)).
		Select(columns).
		Updates(r)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ownership.ErrNotFound
	}
	return nil
}
