package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestApplicationStatusVocabulary(t *testing.T) {
	assert.Len(t, ApplicationStatuses(), 8)
	assert.Equal(t, []ApplicationStatus{StatusApplied, StatusPhoneScreen, StatusInterviewing, StatusFinalRound}, ActiveApplicationStatuses())

	for _, s := range ApplicationStatuses() {
		parsed, ok := ParseApplicationStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
		assert.NotEmpty(t, s.Label())
		assert.NotEmpty(t, s.Color())
	}

	_, ok := ParseApplicationStatus("Offer")
	assert.False(t, ok)
	assert.False(t, ApplicationStatus("hired").Valid())
	assert.Equal(t, "Phone Screen", StatusPhoneScreen.Label())
	assert.Equal(t, "green", StatusOffer.Color())
	assert.True(t, StatusFinalRound.IsActive())
	assert.False(t, StatusOffer.IsActive())

	choices := ApplicationStatusChoices()
	require.Len(t, choices, 8)
	assert.Equal(t, Choice{Value: "saved", Label: "Saved", Color: "gray"}, choices[0])
}

func TestChildVocabularies(t *testing.T) {
	_, ok := ParseInterviewType("onsite")
	assert.True(t, ok)
	_, ok = ParseInterviewType("lunch")
	assert.False(t, ok)
	assert.Equal(t, "Final Round", InterviewFinal.Label())

	_, ok = ParseInterviewOutcome("cancelled")
	assert.True(t, ok)
	assert.Len(t, InterviewOutcomeChoices(), 4)

	_, ok = ParseDocumentType("cover_letter")
	assert.True(t, ok)
	assert.Equal(t, "Cover Letter", DocumentCoverLetter.Label())
	assert.False(t, DocumentType("video").Valid())
}

func TestUnknownValuesAreRejectedBeforeSave(t *testing.T) {
	assert.Error(t, (&Application{Status: "hired"}).BeforeSave(nil))
	assert.NoError(t, (&Application{Status: StatusSaved}).BeforeSave(nil))
	assert.Error(t, (&Interview{InterviewType: "lunch", Outcome: OutcomePending}).BeforeSave(nil))
	assert.Error(t, (&Interview{InterviewType: InterviewHR, Outcome: "maybe"}).BeforeSave(nil))
	assert.Error(t, (&Document{DocumentType: "video"}).BeforeSave(nil))
}

func TestInterviewIsUpcoming(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	iv := Interview{ScheduledAt: now.Add(time.Hour), Outcome: OutcomePending}
	assert.True(t, iv.IsUpcoming(now))

	iv.Outcome = OutcomePassed
	assert.False(t, iv.IsUpcoming(now))

	iv = Interview{ScheduledAt: now.Add(-time.Minute), Outcome: OutcomePending}
	assert.False(t, iv.IsUpcoming(now))
}

func TestReminderBuckets(t *testing.T) {
	today := time.Date(2026, time.March, 10, 15, 45, 0, 0, time.UTC)
	on := func(days int) datatypes.Date {
		return datatypes.Date(Day(today).AddDate(0, 0, days))
	}

	cases := []struct {
		name      string
		r         Reminder
		bucket    ReminderBucket
		due       bool
		overdue   bool
		daysUntil *int
	}{
		{"overdue", Reminder{RemindOn: on(-2)}, BucketOverdue, true, true, intPtr(-2)},
		{"today", Reminder{RemindOn: on(0)}, BucketDueToday, true, false, intPtr(0)},
		{"upcoming", Reminder{RemindOn: on(3)}, BucketUpcoming, false, false, intPtr(3)},
		{"completed", Reminder{RemindOn: on(-2), Completed: true}, BucketCompleted, false, false, nil},
		{"far future", Reminder{RemindOn: datatypes.Date(time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC))}, BucketUpcoming, false, false, intPtr(2912374)},
		{"far past", Reminder{RemindOn: datatypes.Date(time.Date(1000, time.January, 1, 0, 0, 0, 0, time.UTC))}, BucketOverdue, true, true, intPtr(-374807)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.bucket, tc.r.Bucket(today))
			assert.Equal(t, tc.due, tc.r.IsDue(today))
			assert.Equal(t, tc.overdue, tc.r.IsOverdue(today))
			assert.Equal(t, tc.daysUntil, tc.r.DaysUntil(today))
		})
	}
}

func TestApplicationJSONCarriesLabelsAndDate(t *testing.T) {
	applied := datatypes.Date(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	b, err := json.Marshal(Application{Company: "Acme", Status: StatusInterviewing, DateApplied: &applied})
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "2024-03-15", out["date_applied"])
	assert.Equal(t, "Interviewing", out["status_label"])
	assert.Equal(t, "purple", out["status_color"])

	b, err = json.Marshal(Application{Company: "Acme", Status: StatusSaved})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Nil(t, out["date_applied"])
}

func TestJSONFlagsFollowTheDatabaseClock(t *testing.T) {
	dbNow := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	tx := &gorm.DB{Config: &gorm.Config{NowFunc: func() time.Time { return dbNow }}}

	r := Reminder{RemindOn: datatypes.Date(Day(dbNow))}
	require.NoError(t, r.AfterFind(tx))
	b, err := json.Marshal(r)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, true, out["is_due"])
	assert.Equal(t, false, out["is_overdue"])
	assert.Equal(t, float64(0), out["days_until"])
	assert.Equal(t, "2026-03-10", out["remind_on"])

	iv := Interview{
		InterviewType: InterviewTechnical,
		Outcome:       OutcomePending,
		ScheduledAt:   dbNow.Add(time.Hour),
	}
	require.NoError(t, iv.AfterSave(tx))
	b, err = json.Marshal(iv)
	require.NoError(t, err)

	out = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, true, out["is_upcoming"])
}

func intPtr(n int) *int { return &n }
