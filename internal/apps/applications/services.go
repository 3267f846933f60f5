package applications

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/forms"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mutableColumns is everything an edit may rewrite. user_id is not in it.
var mutableColumns = []string{
	"company", "role", "status", "url", "location", "salary_range", "date_applied", "notes",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

func (s *ApplicationService) List(userID uuid.UUID, filter ListFilter) ([]models.Application, error) {
	q := s.db.Model(&models.Application{}).Scopes(ownership.ForUser(userID))

	if filter.Status != "" {
		status, ok := models.ParseApplicationStatus(filter.Status)
		if !ok {
			return []models.Application{}, nil
		}
		q = q.Where("applications.status = ?", status)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		q = q.Where(searchClause(s.db.Dialector.Name()), pattern, pattern)
	}

	apps := []models.Application{}
	err := q.Order("applications.updated_at DESC").Find(&apps).Error
	return apps, err
}

func (s *ApplicationService) Create(userID uuid.UUID, form ApplicationForm) (*models.Application, error) {
	form.normalize()
	if err := validate(&form); err != nil {
		return nil, err
	}

	status, ok := models.ParseApplicationStatus(form.Status)
	if !ok {
		status = models.StatusSaved
	}

	app := models.Application{
		UserID: userID,
		Status: status,
	}
	apply(&app, &form)

	if err := s.db.Omit(clause.Associations).Create(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Get loads one owned application with its interviews, documents and reminders.
func (s *ApplicationService) Get(userID, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.Model(&models.Application{}).
		Scopes(ownership.ForUser(userID)).
		Preload("Interviews", func(db *gorm.DB) *gorm.DB { return db.Order("scheduled_at ASC") }).
		Preload("Documents", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Reminders", func(db *gorm.DB) *gorm.DB { return db.Order("remind_on ASC") }).
		Where("applications.id = ?", id).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ownership.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Find loads one owned application without its children.
func (s *ApplicationService) Find(userID, id uuid.UUID) (*models.Application, error) {
	return ownership.FindApplication(s.db, userID, id)
}

// Update replaces every mutable field. An unknown status leaves the stored
// one in place.
func (s *ApplicationService) Update(userID, id uuid.UUID, form ApplicationForm) (*models.Application, error) {
	form.normalize()
	if err := validate(&form); err != nil {
		return nil, err
	}

	var app *models.Application
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, err = ownership.FindApplication(tx, userID, id)
		if err != nil {
			return err
		}

		if status, ok := models.ParseApplicationStatus(form.Status); ok {
			app.Status = status
		}
		apply(app, &form)

		return save(tx, userID, app)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateStatus moves the application to any known status. Unknown values
// are skipped without error; updated reports whether a write happened.
func (s *ApplicationService) UpdateStatus(userID, id uuid.UUID, raw string) (*models.Application, bool, error) {
	var (
		app     *models.Application
		updated bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, err = ownership.FindApplication(tx, userID, id)
		if err != nil {
			return err
		}

		status, ok := models.ParseApplicationStatus(strings.TrimSpace(raw))
		if !ok {
			return nil
		}
		app.Status = status
		updated = true
		return save(tx, userID, app)
	})
	if err != nil {
		return nil, false, err
	}
	return app, updated, nil
}

// Delete removes the application and every interview, document and reminder
// under it in one transaction.
func (s *ApplicationService) Delete(userID, id uuid.UUID) (*models.Application, error) {
	var app *models.Application
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		app, err = ownership.FindApplication(tx, userID, id)
		if err != nil {
			return err
		}

		for _, child := range []interface{}{&models.Interview{}, &models.Document{}, &models.Reminder{}} {
			if err := tx.Where("application_id = ?", app.ID).Delete(child).Error; err != nil {
				return err
			}
		}

		res := tx.Where("user_id = ?", userID).Delete(&models.Application{}, "id = ?", app.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ownership.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// searchClause matches company or role case-insensitively. SQLite's LOWER
// only folds ASCII, so non-ASCII case folding needs postgres.
func searchClause(dialect string) string {
	if dialect == "postgres" {
		return `(applications.company ILIKE ? ESCAPE '\' OR applications.role ILIKE ? ESCAPE '\')`
	}
	return `(LOWER(applications.company) LIKE ? ESCAPE '\' OR LOWER(applications.role) LIKE ? ESCAPE '\')`
}

func save(tx *gorm.DB, userID uuid.UUID, app *models.Application) error {
	res := tx.Model(app).
		Omit(clause.Associations).
		Where("user_id = ?", userID).
		Select(mutableColumns).
		Updates(app)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

func validate(form *ApplicationForm) error {
	if form.Company == "" || form.Role == "" {
		return forms.Invalid("Company and role are required.", form.values())
	}
	return nil
}

func apply(app *models.Application, form *ApplicationForm) {
	app.Company = form.Company
	app.Role = form.Role
	app.URL = form.URL
	app.Location = form.Location
	app.SalaryRange = form.SalaryRange
	app.Notes = form.Notes
	app.DateApplied = nil
	if d := forms.OptionalDate(form.DateApplied); d != nil {
		date := datatypes.Date(*d)
		app.DateApplied = &date
	}
}
