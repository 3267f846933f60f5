package dashboard

import (
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/ownership"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type statusCount struct {
	Status models.ApplicationStatus
	Count  int64
}

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Summary gathers every dashboard panel for one user. The queries are
// independent and each is bounded by Limit.
func (s *DashboardService) Summary(userID uuid.UUID) (*Summary, error) {
	counts, err := s.Counts(userID)
	if err != nil {
		return nil, err
	}
	due, err := s.DueReminders(userID)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.UpcomingInterviews(userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.RecentApplications(userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Counts: *counts,
		Stats: []Stat{
			{Label: "Total Applications", Value: counts.Total, Color: "primary"},
			{Label: "Active", Value: counts.Active, Color: "blue"},
			{Label: "Offers", Value: counts.Offer, Color: "green"},
			{Label: "Rejected", Value: counts.Rejected, Color: "red"},
		},
		DueReminders:       due,
		UpcomingInterviews: upcoming,
		RecentApplications: recent,
		StatusChoices:      models.ApplicationStatusChoices(),
	}, nil
}

// Counts tallies the user's applications per status in a single query.
func (s *DashboardService) Counts(userID uuid.UUID) (*Counts, error) {
	var rows []statusCount
	err := s.db.Model(&models.Application{}).
		Scopes(ownership.ForUser(userID)).
		Select("applications.status AS status, COUNT(*) AS count").
		Group("applications.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &Counts{ByStatus: make(map[models.ApplicationStatus]int64, len(rows))}
	for _, row := range rows {
		counts.ByStatus[row.Status] = row.Count
		counts.Total += row.Count
	}
	for _, status := range models.ActiveApplicationStatuses() {
		counts.Active += counts.ByStatus[status]
	}
	counts.Offer = counts.ByStatus[models.StatusOffer]
	counts.Rejected = counts.ByStatus[models.StatusRejected]
	return counts, nil
}

// DueReminders returns open reminders dated today or earlier, oldest first.
func (s *DashboardService) DueReminders(userID uuid.UUID) ([]models.Reminder, error) {
	today := models.Day(s.db.NowFunc())

	reminders := []models.Reminder{}
	err := s.db.Model(&models.Reminder{}).
		Scopes(ownership.ThroughApplication("reminders", userID)).
		Preload("Application").
		Where("reminders.completed = ? AND reminders.remind_on <= ?", false, datatypes.Date(today)).
		Order("reminders.remind_on ASC").
		Limit(Limit).
		Find(&reminders).Error
	return reminders, err
}

// UpcomingInterviews returns pending interviews in the next UpcomingWindow,
// soonest first.
func (s *DashboardService) UpcomingInterviews(userID uuid.UUID) ([]models.Interview, error) {
	now := s.db.NowFunc()

	interviews := []models.Interview{}
	err := s.db.Model(&models.Interview{}).
		Scopes(ownership.ThroughApplication("interviews", userID)).
		Preload("Application").
		Where("interviews.outcome = ?", models.OutcomePending).
		Where("interviews.scheduled_at >= ? AND interviews.scheduled_at <= ?", now, now.Add(UpcomingWindow)).
		Order("interviews.scheduled_at ASC").
		Limit(Limit).
		Find(&interviews).Error
	return interviews, err
}

func (s *DashboardService) RecentApplications(userID uuid.UUID) ([]models.Application, error) {
	apps := []models.Application{}
	err := s.db.Model(&models.Application{}).
		Scopes(ownership.ForUser(userID)).
		Order("applications.updated_at DESC").
		Limit(Limit).
		Find(&apps).Error
	return apps, err
}
