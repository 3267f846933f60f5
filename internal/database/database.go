package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/apps"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/jobtracker/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Now is the clock every timestamp written through GORM comes from.
func Now() time.Time { return time.Now().UTC() }

func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        Now,
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// sqlite allows a single writer at a time
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	slog.Info("database connected", "driver", cfg.DBDriver)
	return nil
}

// MigrateShared creates the tables every module depends on.
func MigrateShared(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.SystemLog{},
	)
}

// MigrateModels runs AutoMigrate for the tables one module owns.
func MigrateModels(db *gorm.DB, modelList []interface{}) error {
	if len(modelList) == 0 {
		return nil
	}
	return db.AutoMigrate(modelList...)
}

// Migrate creates the shared tables, then each module's tables in the order
// given. Modules whose tables reference another module's come after it.
func Migrate(db *gorm.DB, modules []apps.Module) error {
	if err := MigrateShared(db); err != nil {
		return fmt.Errorf("shared models: %w", err)
	}
	for _, m := range modules {
		if err := MigrateModels(db, m.Models()); err != nil {
			return fmt.Errorf("%s models: %w", m.ID(), err)
		}
	}
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
