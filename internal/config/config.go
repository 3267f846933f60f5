package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Sessions
	JWTSecret             string
	SessionExpiry         time.Duration
	SessionRememberExpiry time.Duration
	CookieSecure          bool

	// Rate limiter storage (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Observability
	SentryDSN        string
	AppEnv           string
	LogRetentionDays int

	// Server
	Port        string
	CORSOrigins string
}

// Load reads the environment, merging an optional .env file first.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "jobtracker"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "jobtracker.db"),

		JWTSecret:             getEnv("JWT_SECRET", ""),
		SessionExpiry:         parseDuration(getEnv("SESSION_EXPIRY", "24h"), 24*time.Hour),
		SessionRememberExpiry: parseDuration(getEnv("SESSION_REMEMBER_EXPIRY", "720h"), 720*time.Hour),
		CookieSecure:          parseBool(getEnv("COOKIE_SECURE", "false")),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	switch c.DBDriver {
	case "postgres":
		if c.DBPassword == "" {
			return errors.New("DB_PASSWORD environment variable is required")
		}
	case "sqlite":
	default:
		return errors.New("DB_DRIVER must be postgres or sqlite, got " + strconv.Quote(c.DBDriver))
	}
	return nil
}

func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath + "?_foreign_keys=on"
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
