package documents

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/forms"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgFilenameRequired = "Document name is required."

var mutableColumns = []string{"filename", "document_type", "url", "notes"}

type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

func (s *DocumentService) NewForm(userID uuid.UUID, rawAppID string) (*FormResponse, error) {
	resp := &FormResponse{TypeChoices: models.DocumentTypeChoices()}
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

func (s *DocumentService) EditForm(userID, id uuid.UUID) (*FormResponse, error) {
	doc, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	return &FormResponse{
		Document:     doc,
		Application:  doc.Application,
		Applications: []models.Application{},
		TypeChoices:  models.DocumentTypeChoices(),
	}, nil
}

func (s *DocumentService) Create(userID uuid.UUID, form DocumentForm) (*models.Document, error) {
	form.normalize()

	appID, err := ownership.ParseID(form.ApplicationID)
	if err != nil {
		return nil, err
	}
	app, err := ownership.FindApplication(s.db, userID, appID)
	if err != nil {
		return nil, err
	}

	doc := models.Document{ApplicationID: app.ID}
	if err := apply(&doc, &form); err != nil {
		return nil, err
	}
	if err := s.db.Omit(clause.Associations).Create(&doc).Error; err != nil {
		return nil, err
	}
	doc.Application = app
	return &doc, nil
}

func (s *DocumentService) Get(userID, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := s.db.Model(&models.Document{}).
		Scopes(ownership.ThroughApplication("documents", userID)).
		Preload("Application").
		Where("documents.id = ?", id).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ownership.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *DocumentService) Update(userID, id uuid.UUID, form DocumentForm) (*models.Document, error) {
	form.normalize()

	var doc *models.Document
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		doc, err = ownership.FindDocument(tx, userID, id)
		if err != nil {
			return err
		}
		if err := apply(doc, &form); err != nil {
			return err
		}

		res := tx.Model(doc).
			Omit(clause.Associations).
			Where("application_id IN (?)", tx.Model(&models.Application{}).Select("id").Where("user_id = ?", userID)).
			Select(mutableColumns).
			Updates(doc)
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
	return doc, nil
}

func (s *DocumentService) Delete(userID, id uuid.UUID) (*models.Document, error) {
	var doc *models.Document
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		doc, err = ownership.FindDocument(tx, userID, id)
		if err != nil {
			return err
		}
		return tx.Delete(&models.Document{}, "id = ?", doc.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func apply(doc *models.Document, form *DocumentForm) error {
	if form.Filename == "" {
		return forms.Invalid(msgFilenameRequired, form.values())
	}

	doc.DocumentType = models.DocumentOther
	if t, ok := models.ParseDocumentType(form.DocumentType); ok {
		doc.DocumentType = t
	}
	doc.Filename = form.Filename
	doc.URL = form.URL
	doc.Notes = form.Notes
	return nil
}
