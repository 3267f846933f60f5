package ownership

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound covers both "no such row" and "row belongs to someone else".
// Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

// ParseID turns a path or form value into an id. Malformed ids are
// indistinguishable from missing rows.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrNotFound
	}
	return id, nil
}

func FindApplication(db *gorm.DB, userID, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := db.Model(&models.Application{}).
		Scopes(ForUser(userID)).
		Where("applications.id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

func FindInterview(db *gorm.DB, userID, id uuid.UUID) (*models.Interview, error) {
	var iv models.Interview
	err := db.Model(&models.Interview{}).
		Scopes(ThroughApplication("interviews", userID)).
		Where("interviews.id = ?", id).
		First(&iv).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &iv, nil
}

func FindDocument(db *gorm.DB, userID, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := db.Model(&models.Document{}).
		Scopes(ThroughApplication("documents", userID)).
		Where("documents.id = ?", id).
		First(&doc).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

func FindReminder(db *gorm.DB, userID, id uuid.UUID) (*models.Reminder, error) {
	var r models.Reminder
	err := db.Model(&models.Reminder{}).
		Scopes(ThroughApplication("reminders", userID)).
		Where("reminders.id = ?", id).
		First(&r).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

// ListApplications returns the user's applications ordered for pickers.
func ListApplications(db *gorm.DB, userID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := db.Model(&models.Application{}).
		Scopes(ForUser(userID)).
		Order("applications.company ASC").
		Find(&apps).Error
	return apps, err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
