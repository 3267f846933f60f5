package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/applications"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/dashboard"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/documents"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/interviews"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/reminders"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/services"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/testutil"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T, middlewares ...fiber.Handler) *testServer {
	t.Helper()
	db, _ := testutil.NewDB(t)
	cfg := &config.Config{
		JWTSecret:             "test-secret",
		SessionExpiry:         time.Hour,
		SessionRememberExpiry: 24 * time.Hour,
		CORSOrigins:           "*",
	}
	authService := services.NewAuthService(db, cfg).WithHashCost(bcrypt.MinCost)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(middleware.SecurityHeaders())
	for _, mw := range middlewares {
		app.Use(mw)
	}
	Setup(app, Deps{
		Config:        cfg,
		DB:            db,
		AuthService:   authService,
		AuthHandler:   handlers.NewAuthHandler(authService, cfg),
		HealthHandler: handlers.NewHealthHandlerWithPing(func() error { return nil }),
		Modules: []apps.Module{
			dashboard.New(),
			applications.New(),
			interviews.New(),
			documents.New(),
			reminders.New(),
		},
	})
	return &testServer{t: t, app: app, db: db}
}

// do sends a form-encoded request, authenticated when token is set.
func (s *testServer) do(method, path, token string, form url.Values) *http.Response {
	s.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *testServer) signup(email string) string {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/signup", "", url.Values{
		"name": {"Jo"}, "email": {email}, "password": {"secret1"}, "confirm_password": {"secret1"},
	})
	require.Equal(s.t, fiber.StatusCreated, resp.StatusCode)
	body := decode(s.t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode(t, resp)["status"])
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestReadyReportsDatabaseFailure(t *testing.T) {
	app := fiber.New()
	h := handlers.NewHealthHandlerWithPing(func() error { return errors.New("connection refused") })
	app.Get("/health/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestAnonymousRequestsAreSentToLogin(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/applications?status=offer", nil)
	req.Header.Set(fiber.HeaderAccept, "text/html,application/xhtml+xml")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next="+url.QueryEscape("/applications?status=offer"), resp.Header.Get(fiber.HeaderLocation))

	resp = s.do(http.MethodGet, "/reminders", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Freminders", decode(t, resp)["login_url"])

	resp = s.do(http.MethodGet, "/", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.do(http.MethodGet, "/login", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(http.MethodPost, "/signup", "", url.Values{
		"name": {"Jo"}, "email": {"jo@example.com"}, "password": {"abc"}, "confirm_password": {"abc"},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decode(t, resp)
	assert.Contains(t, body["message"], "at least 6 characters")
	assert.Equal(t, "jo@example.com", body["values"].(map[string]interface{})["email"])

	s.signup("jo@example.com")
	resp = s.do(http.MethodPost, "/signup", "", url.Values{
		"name": {"Jo"}, "email": {"JO@example.com"}, "password": {"secret1"}, "confirm_password": {"secret1"},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginAndLogout(t *testing.T) {
	s := newTestServer(t)
	s.signup("jo@example.com")

	resp := s.do(http.MethodPost, "/login", "", url.Values{"email": {"jo@example.com"}, "password": {"wrong!"}})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, services.MsgInvalidCredentials, decode(t, resp)["message"])

	resp = s.do(http.MethodPost, "/login?next=/reminders", "", url.Values{
		"email": {" Jo@Example.com "}, "password": {"secret1"}, "remember": {"on"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	body := decode(t, resp)
	assert.Equal(t, "/reminders", body["redirect"])
	token := body["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie.Value})
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	me := decode(t, resp)
	assert.Equal(t, "jo@example.com", me["email"])
	assert.NotContains(t, me, "password")

	resp = s.do(http.MethodPost, "/logout", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodGet, "/me", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestApplicationFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("jo@example.com")

	resp := s.do(http.MethodPost, "/applications", token, url.Values{
		"company": {"Acme"}, "role": {"Engineer"}, "date_applied": {"2024-03-15"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode(t, resp)["application"].(map[string]interface{})
	assert.Equal(t, "saved", created["status"])
	assert.Equal(t, "Saved", created["status_label"])
	assert.Equal(t, "2024-03-15", created["date_applied"])
	appID := created["id"].(string)

	resp = s.do(http.MethodPost, "/applications", token, url.Values{"company": {"Acme"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = s.do(http.MethodPost, "/interviews/create", token, url.Values{
		"application_id": {appID}, "interview_type": {"technical"},
		"scheduled_date": {"2030-01-01"}, "scheduled_time": {"25:99"},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Invalid date or time format.", decode(t, resp)["message"])

	resp = s.do(http.MethodPost, "/interviews/create", token, url.Values{
		"application_id": {appID}, "interview_type": {"technical"},
		"scheduled_date": {"2030-01-01"}, "scheduled_time": {"14:30"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = s.do(http.MethodPost, "/documents/create", token, url.Values{
		"application_id": {appID}, "filename": {"cv.pdf"}, "document_type": {"resume"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = s.do(http.MethodPost, "/reminders/create", token, url.Values{
		"application_id": {appID}, "message": {"Follow up"}, "remind_on": {"2026-03-01"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	reminderID := decode(t, resp)["reminder"].(map[string]interface{})["id"].(string)

	resp = s.do(http.MethodPost, "/reminders/"+reminderID+"/complete", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = s.do(http.MethodPost, "/reminders/"+reminderID+"/complete", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodGet, "/applications/"+appID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	shown := decode(t, resp)
	assert.Len(t, shown["interviews"], 1)
	assert.Len(t, shown["documents"], 1)
	assert.Len(t, shown["reminders"], 1)

	resp = s.do(http.MethodPost, "/applications/"+appID+"/status", token, url.Values{"status": {"offer"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["updated"])

	resp = s.do(http.MethodGet, "/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	dash := decode(t, resp)
	assert.Equal(t, float64(1), dash["offer"])
	assert.Equal(t, float64(0), dash["active"])

	resp = s.do(http.MethodPost, "/applications/"+appID+"/delete", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, model := range []interface{}{&models.Interview{}, &models.Document{}, &models.Reminder{}} {
		var count int64
		require.NoError(t, s.db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestOtherUsersSeeNotFound(t *testing.T) {
	s := newTestServer(t)
	owner := s.signup("owner@example.com")
	intruder := s.signup("intruder@example.com")

	resp := s.do(http.MethodPost, "/applications", owner, url.Values{"company": {"Acme"}, "role": {"Engineer"}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	appID := decode(t, resp)["application"].(map[string]interface{})["id"].(string)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/applications/" + appID},
		{http.MethodGet, "/applications/" + appID + "/edit"},
		{http.MethodPost, "/applications/" + appID + "/delete"},
		{http.MethodGet, "/applications/00000000-0000-0000-0000-000000000001"},
		{http.MethodGet, "/applications/42"},
		{http.MethodGet, "/interviews/new?application_id=" + appID},
	} {
		resp := s.do(tc.method, tc.path, intruder, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, tc.path)
		assert.Equal(t, "Not found", decode(t, resp)["message"], tc.path)
	}

	resp = s.do(http.MethodGet, "/applications/"+appID, owner, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStoreFailureIsAnOpaque500(t *testing.T) {
	var captured []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			captured = append(captured, event)
			return nil
		},
	})
	require.NoError(t, err)
	hub := sentry.CurrentHub()
	prev := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() { hub.BindClient(prev) })

	s := newTestServer(t, sentryfiber.New(sentryfiber.Options{}))
	token := s.signup("jo@example.com")

	require.NoError(t, s.db.Callback().Create().Before("gorm:create").Register("test:fail_applications", func(tx *gorm.DB) {
		if tx.Statement.Table == "applications" {
			_ = tx.AddError(errors.New("pq: relation \"applications\" is locked"))
		}
	}))

	resp := s.do(http.MethodPost, "/applications", token, url.Values{"company": {"Acme"}, "role": {"Engineer"}})
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":true,"message":"Internal server error"}`, string(raw))
	assert.NotContains(t, string(raw), "locked")

	var count int64
	require.NoError(t, s.db.Model(&models.Application{}).Count(&count).Error)
	assert.Zero(t, count)

	require.Len(t, captured, 1)
	require.NotEmpty(t, captured[0].Exception)
	assert.Contains(t, captured[0].Exception[len(captured[0].Exception)-1].Value, "locked")
}
