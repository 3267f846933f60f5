package dashboard

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps/applications"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestOfferMovesOfferCountOnly(t *testing.T) {
	db, _ := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "owner@example.com", "secret1")
	apps := applications.NewApplicationService(db)
	svc := NewDashboardService(db)

	_, err := apps.Create(user.ID, applications.ApplicationForm{Company: "Globex", Role: "SRE", Status: "interviewing"})
	require.NoError(t, err)
	acme, err := apps.Create(user.ID, applications.ApplicationForm{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSaved, acme.Status)

	before, err := svc.Counts(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), before.Total)
	assert.Equal(t, int64(1), before.Active)
	assert.Zero(t, before.Offer)

	_, _, err = apps.UpdateStatus(user.ID, acme.ID, "offer")
	require.NoError(t, err)

	after, err := svc.Counts(user.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Offer+1, after.Offer)
	assert.Equal(t, before.Active, after.Active)
	assert.Equal(t, before.Total, after.Total)
	assert.Equal(t, int64(1), after.ByStatus[models.StatusOffer])
	assert.Zero(t, after.ByStatus[models.StatusSaved])
}

func TestSummaryIsScopedAndBounded(t *testing.T) {
	db, clock := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", "secret1")
	other := testutil.CreateUser(t, db, "other@example.com", "secret1")
	now := clock.Now()
	today := models.Day(now)

	var mine *models.Application
	for i := 0; i < 7; i++ {
		app := &models.Application{UserID: owner.ID, Company: "Co", Role: "Dev", Status: models.StatusApplied}
		require.NoError(t, db.Create(app).Error)
		mine = app
		clock.Advance(time.Minute)
	}
	theirs := &models.Application{UserID: other.ID, Company: "Rival", Role: "Dev", Status: models.StatusRejected}
	require.NoError(t, db.Create(theirs).Error)
	clock.Set(now)

	reminders := []models.Reminder{
		{ApplicationID: mine.ID, Message: "overdue", RemindOn: datatypes.Date(today.AddDate(0, 0, -3))},
		{ApplicationID: mine.ID, Message: "today", RemindOn: datatypes.Date(today)},
		{ApplicationID: mine.ID, Message: "tomorrow", RemindOn: datatypes.Date(today.AddDate(0, 0, 1))},
		{ApplicationID: mine.ID, Message: "done", RemindOn: datatypes.Date(today.AddDate(0, 0, -1)), Completed: true},
		{ApplicationID: theirs.ID, Message: "theirs", RemindOn: datatypes.Date(today)},
	}
	for i := range reminders {
		require.NoError(t, db.Create(&reminders[i]).Error)
	}

	interviews := []models.Interview{
		{ApplicationID: mine.ID, ScheduledAt: now.Add(48 * time.Hour), Interviewer: "later"},
		{ApplicationID: mine.ID, ScheduledAt: now.Add(2 * time.Hour), Interviewer: "soon"},
		{ApplicationID: mine.ID, ScheduledAt: now.Add(8 * 24 * time.Hour), Interviewer: "too far"},
		{ApplicationID: mine.ID, ScheduledAt: now.Add(-time.Hour), Interviewer: "past"},
		{ApplicationID: mine.ID, ScheduledAt: now.Add(3 * time.Hour), Interviewer: "decided", Outcome: models.OutcomePassed},
		{ApplicationID: theirs.ID, ScheduledAt: now.Add(time.Hour), Interviewer: "theirs"},
	}
	for i := range interviews {
		iv := &interviews[i]
		iv.InterviewType = models.InterviewTechnical
		iv.DurationMinutes = models.DefaultInterviewMinutes
		if iv.Outcome == "" {
			iv.Outcome = models.OutcomePending
		}
		require.NoError(t, db.Create(iv).Error)
	}

	summary, err := NewDashboardService(db).Summary(owner.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(7), summary.Total)
	assert.Equal(t, int64(7), summary.Active)
	assert.Zero(t, summary.Rejected)
	require.Len(t, summary.Stats, 4)
	assert.Equal(t, int64(7), summary.Stats[0].Value)

	require.Len(t, summary.DueReminders, 2)
	assert.Equal(t, "overdue", summary.DueReminders[0].Message)
	assert.Equal(t, "today", summary.DueReminders[1].Message)

	require.Len(t, summary.UpcomingInterviews, 2)
	assert.Equal(t, "soon", summary.UpcomingInterviews[0].Interviewer)
	assert.Equal(t, "later", summary.UpcomingInterviews[1].Interviewer)

	require.Len(t, summary.RecentApplications, Limit)
	assert.Equal(t, mine.ID, summary.RecentApplications[0].ID)
	for _, app := range summary.RecentApplications {
		assert.Equal(t, owner.ID, app.UserID)
	}
}

func TestDueRemindersAndInterviewsAreCapped(t *testing.T) {
	db, clock := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner@example.com", "secret1")
	now := clock.Now()
	today := models.Day(now)

	app := &models.Application{UserID: owner.ID, Company: "Acme", Role: "Dev", Status: models.StatusInterviewing}
	require.NoError(t, db.Create(app).Error)

	// eight of each, created latest first so ordering has to come from the query
	const n = Limit + 3
	for i := n - 1; i >= 0; i-- {
		require.NoError(t, db.Create(&models.Reminder{
			ApplicationID: app.ID,
			Message:       "due",
			RemindOn:      datatypes.Date(today.AddDate(0, 0, -i)),
		}).Error)
		require.NoError(t, db.Create(&models.Interview{
			ApplicationID:   app.ID,
			InterviewType:   models.InterviewTechnical,
			DurationMinutes: models.DefaultInterviewMinutes,
			Outcome:         models.OutcomePending,
			ScheduledAt:     now.Add(time.Duration(i+1) * time.Hour),
		}).Error)
	}

	svc := NewDashboardService(db)

	due, err := svc.DueReminders(owner.ID)
	require.NoError(t, err)
	require.Len(t, due, Limit)
	assert.Equal(t, today.AddDate(0, 0, -(n-1)), time.Time(due[0].RemindOn).UTC())
	for i := 1; i < len(due); i++ {
		assert.False(t, time.Time(due[i].RemindOn).Before(time.Time(due[i-1].RemindOn)))
	}

	upcoming, err := svc.UpcomingInterviews(owner.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, Limit)
	assert.Equal(t, now.Add(time.Hour), upcoming[0].ScheduledAt.UTC())
	assert.Equal(t, now.Add(time.Duration(Limit)*time.Hour), upcoming[Limit-1].ScheduledAt.UTC())

	summary, err := svc.Summary(owner.ID)
	require.NoError(t, err)
	assert.Len(t, summary.DueReminders, Limit)
	assert.Len(t, summary.UpcomingInterviews, Limit)
}
