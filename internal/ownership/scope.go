package ownership

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForUser filters applications by their owner.
func ForUser(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("applications.user_id = ?", userID)
	}
}

// ThroughApplication joins a child table (interviews, documents, reminders)
// to its parent application and filters by the parent's owner, so the
// ownership check is part of the same statement as the lookup.
func ThroughApplication(table string, userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN applications ON applications.id = "+table+".application_id").
			Where("applications.user_id = ?", userID)
	}
}
