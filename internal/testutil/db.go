// Package testutil provides an isolated database and a controllable clock
// for package tests.
package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/database"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Clock is a settable time source wired into GORM's NowFunc.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// DefaultNow is the fixed instant tests start from unless they say otherwise.
var DefaultNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

// trackerModels mirrors the module migration order.
var trackerModels = []interface{}{
	&models.Application{},
	&models.Interview{},
	&models.Document{},
	&models.Reminder{},
}

// NewDB opens a private in-memory SQLite database with the production schema.
func NewDB(t *testing.T) (*gorm.DB, *Clock) {
	t.Helper()

	db, clock := OpenDB(t)
	require.NoError(t, database.MigrateShared(db))
	require.NoError(t, database.MigrateModels(db, trackerModels))
	return db, clock
}

// OpenDB opens a private in-memory SQLite database with no tables.
func OpenDB(t *testing.T) (*gorm.DB, *Clock) {
	t.Helper()

	clock := NewClock(DefaultNow)
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        clock.Now,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db, clock
}

// CreateUser inserts a user with a cheap bcrypt hash of password.
func CreateUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Name: "Test User", Email: email, Password: string(hash)}
	require.NoError(t, db.Create(user).Error)
	return user
}
