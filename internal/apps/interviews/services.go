package interviews

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/forms"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgDateTimeRequired = "Date and time are required."
	msgDateTimeInvalid  = "Invalid date or time format."
)

var mutableColumns = []string{
	"interview_type", "scheduled_at", "duration_minutes", "interviewer",
	"location", "notes", "outcome", "feedback",
}

type InterviewService struct {
	db *gorm.DB
}

func NewInterviewService(db *gorm.DB) *InterviewService {
	return &InterviewService{db: db}
}

// NewForm resolves the optional preselected application and the picker list.
func (s *InterviewService) NewForm(userID uuid.UUID, rawAppID string) (*FormResponse, error) {
	resp := &FormResponse{
		TypeChoices:    models.InterviewTypeChoices(),
		OutcomeChoices: models.InterviewOutcomeChoices(),
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

func (s *InterviewService) EditForm(userID, id uuid.UUID) (*FormResponse, error) {
	iv, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	return &FormResponse{
		Interview:      iv,
		Application:    iv.Application,
		Applications:   []models.Application{},
		TypeChoices:    models.InterviewTypeChoices(),
		OutcomeChoices: models.InterviewOutcomeChoices(),
	}, nil
}

func (s *InterviewService) Create(userID uuid.UUID, form InterviewForm) (*models.Interview, error) {
	form.normalize()

	appID, err := ownership.ParseID(form.ApplicationID)
	if err != nil {
		return nil, err
	}
	app, err := ownership.FindApplication(s.db, userID, appID)
	if err != nil {
		return nil, err
	}

	iv := models.Interview{
		ApplicationID: app.ID,
		InterviewType: models.InterviewOther,
		Outcome:       models.OutcomePending,
	}
	if outcome, ok := models.ParseInterviewOutcome(form.Outcome); ok {
		iv.Outcome = outcome
	}
	if err := apply(&iv, &form); err != nil {
		return nil, err
	}

	if err := s.db.Omit(clause.Associations).Create(&iv).Error; err != nil {
		return nil, err
	}
	iv.Application = app
	return &iv, nil
}

// Get loads an owned interview together with its application.
func (s *InterviewService) Get(userID, id uuid.UUID) (*models.Interview, error) {
	var iv models.Interview
	err := s.db.Model(&models.Interview{}).
		Scopes(ownership.ThroughApplication("interviews", userID)).
		Preload("Application").
		Where("interviews.id = ?", id).
		First(&iv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ownership.ErrNotFound
		}
		return nil, err
	}
	return &iv, nil
}

// Update replaces every mutable field. The schedule is required again; an
// unknown outcome keeps the stored one.
func (s *InterviewService) Update(userID, id uuid.UUID, form InterviewForm) (*models.Interview, error) {
	form.normalize()

	var iv *models.Interview
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		iv, err = ownership.FindInterview(tx, userID, id)
		if err != nil {
			return err
		}

		if outcome, ok := models.ParseInterviewOutcome(form.Outcome); ok {
			iv.Outcome = outcome
		}
		if err := apply(iv, &form); err != nil {
			return err
		}
		return save(tx, userID, iv)
	})
	if err != nil {
		return nil, err
	}
	return iv, nil
}

// UpdateOutcome moves the interview to any known outcome. Unknown values are
// skipped without error.
func (s *InterviewService) UpdateOutcome(userID, id uuid.UUID, raw string) (*models.Interview, bool, error) {
	var (
		iv      *models.Interview
		updated bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		iv, err = ownership.FindInterview(tx, userID, id)
		if err != nil {
			return err
		}

		outcome, ok := models.ParseInterviewOutcome(raw)
		if !ok {
			return nil
		}
		iv.Outcome = outcome
		updated = true
		return save(tx, userID, iv)
	})
	if err != nil {
		return nil, false, err
	}
	return iv, updated, nil
}

func (s *InterviewService) Delete(userID, id uuid.UUID) (*models.Interview, error) {
	var iv *models.Interview
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		iv, err = ownership.FindInterview(tx, userID, id)
		if err != nil {
			return err
		}
		return tx.Delete(&models.Interview{}, "id = ?", iv.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return iv, nil
}

func save(tx *gorm.DB, userID uuid.UUID, iv *models.Interview) error {
	res := tx.Model(iv).
		Omit(clause.Associations).
		Where("application_id IN (?)", tx.Model(&models.Application{}).Select("id").Where("user_id = ?", userID)).
		Select(mutableColumns).
		Updates(iv)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

// apply copies the form onto iv. Nothing is written when the schedule does
// not parse.
func apply(iv *models.Interview, form *InterviewForm) error {
	if form.ScheduledDate == "" || form.ScheduledTime == "" {
		return forms.Invalid(msgDateTimeRequired, form.values())
	}
	scheduledAt, err := forms.ParseDateTime(form.ScheduledDate, form.ScheduledTime)
	if err != nil {
		return forms.Invalid(msgDateTimeInvalid, form.values())
	}

	iv.InterviewType = models.InterviewOther
	if t, ok := models.ParseInterviewType(form.InterviewType); ok {
		iv.InterviewType = t
	}
	iv.ScheduledAt = scheduledAt
	iv.DurationMinutes = forms.IntOr(form.DurationMinutes, models.DefaultInterviewMinutes)
	iv.Interviewer = form.Interviewer
	iv.Location = form.Location
	iv.Notes = form.Notes
	iv.Feedback = form.Feedback
	return nil
}
