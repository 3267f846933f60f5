package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "cover_letter"
	DocumentPortfolio   DocumentType = "portfolio"
	DocumentOther       DocumentType = "other"
)

var documentTypes = vocabulary[DocumentType]{
	{value: DocumentResume, label: "Resume"},
	{value: DocumentCoverLetter, label: "Cover Letter"},
	{value: DocumentPortfolio, label: "Portfolio"},
	{value: DocumentOther, label: "Other"},
}

func ParseDocumentType(raw string) (DocumentType, bool) {
	o, ok := documentTypes.lookup(DocumentType(raw))
	return o.value, ok
}

func DocumentTypeChoices() []Choice { return documentTypes.choices() }

func (t DocumentType) Valid() bool {
	_, ok := documentTypes.lookup(t)
	return ok
}

func (t DocumentType) Label() string { return documentTypes.label(t) }

// Document is a reference to a file kept elsewhere (Drive, Dropbox, ...).
type Document struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID    `gorm:"type:uuid;not null;index" json:"application_id"`
	DocumentType  DocumentType `gorm:"size:50;not null;default:'other'" json:"document_type"`
	Filename      string       `gorm:"size:255;not null" json:"filename"`
	URL           string       `gorm:"size:500" json:"url"`
	Notes         string       `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`

	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func (d *Document) BeforeSave(tx *gorm.DB) error {
	if !d.DocumentType.Valid() {
		return fmt.Errorf("document type %q is not a known type", d.DocumentType)
	}
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	return json.Marshal(struct {
		plain
		TypeLabel string `json:"type_label"`
	}{plain(d), d.DocumentType.Label()})
}
