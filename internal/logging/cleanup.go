package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"gorm.io/gorm"
)

// Cleanup deletes system_logs rows older than retentionDays.
func Cleanup(db *gorm.DB, retentionDays int) (int64, error) {
	cutoff := db.NowFunc().AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup runs Cleanup once a day until done is closed.
func StartCleanup(db *gorm.DB, retentionDays int, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := Cleanup(db, retentionDays)
				if err != nil {
					slog.Error("log cleanup failed", "action", "log_cleanup", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}
