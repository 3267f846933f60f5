package documents

import (
	"errors"
	"testing"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/forms"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentLifecycle(t *testing.T) {
	db, _ := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "owner@example.com", "secret1")
	app := &models.Application{UserID: user.ID, Company: "Acme", Role: "Engineer", Status: models.StatusApplied}
	require.NoError(t, db.Create(app).Error)
	svc := NewDocumentService(db)

	doc, err := svc.Create(user.ID, DocumentForm{
		ApplicationID: app.ID.String(),
		Filename:      " resume-v3.pdf ",
		DocumentType:  "spreadsheet",
		URL:           "https://drive.example.com/cv",
	})
	require.NoError(t, err)
	assert.Equal(t, "resume-v3.pdf", doc.Filename)
	assert.Equal(t, models.DocumentOther, doc.DocumentType)

	updated, err := svc.Update(user.ID, doc.ID, DocumentForm{Filename: "resume-v4.pdf", DocumentType: "resume"})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentResume, updated.DocumentType)

	got, err := svc.Get(user.ID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "resume-v4.pdf", got.Filename)
	assert.Empty(t, got.URL)
	assert.Equal(t, app.ID, got.Application.ID)

	_, err = svc.Update(user.ID, doc.ID, DocumentForm{Filename: "  ", Notes: "draft"})
	var verr *forms.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{msgFilenameRequired}, verr.Messages)
	assert.Equal(t, "draft", verr.Values["notes"])

	got, err = svc.Get(user.ID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "resume-v4.pdf", got.Filename)

	_, err = svc.Delete(user.ID, doc.ID)
	require.NoError(t, err)
	_, err = svc.Get(user.ID, doc.ID)
	assert.ErrorIs(t, err, ownership.ErrNotFound)
}

func TestCreateRejectsMissingFilename(t *testing.T) {
	db, _ := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "owner@example.com", "secret1")
	app := &models.Application{UserID: user.ID, Company: "Acme", Role: "Engineer", Status: models.StatusApplied}
	require.NoError(t, db.Create(app).Error)

	_, err := NewDocumentService(db).Create(user.ID, DocumentForm{ApplicationID: app.ID.String()})
	var verr *forms.ValidationError
	require.True(t, errors.As(err, &verr))

	var count int64
	require.NoError(t, db.Model(&models.Document{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOtherUsersDocumentsAreNotFound(t *testing.T) {
	db, _ := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", "secret1")
	intruder := testutil.CreateUser(t, db, "intruder@example.com", "secret1")
	app := &models.Application{UserID: owner.ID, Company: "Acme", Role: "Engineer", Status: models.StatusApplied}
	require.NoError(t, db.Create(app).Error)
	svc := NewDocumentService(db)

	doc, err := svc.Create(owner.ID, DocumentForm{ApplicationID: app.ID.String(), Filename: "cv.pdf"})
	require.NoError(t, err)

	_, err = svc.Create(intruder.ID, DocumentForm{ApplicationID: app.ID.String(), Filename: "planted.pdf"})
	assert.ErrorIs(t, err, ownership.ErrNotFound)
	_, err = svc.Get(intruder.ID, doc.ID)
	assert.ErrorIs(t, err, ownership.ErrNotFound)
	_, err = svc.Update(intruder.ID, doc.ID, DocumentForm{Filename: "hijacked.pdf"})
	assert.ErrorIs(t, err, ownership.ErrNotFound)
	_, err = svc.Delete(intruder.ID, doc.ID)
	assert.ErrorIs(t, err, ownership.ErrNotFound)

	got, err := svc.Get(owner.ID, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", got.Filename)
}
