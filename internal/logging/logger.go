package logging

import (
	"io"
	"log/slog"
	"os"

	"gorm.io/gorm"
)

// Setup installs a JSON logger on stdout at INFO and returns its handler.
func Setup() slog.Handler {
	handler := newStdout(os.Stdout)
	slog.SetDefault(slog.New(handler))
	return handler
}

// AttachDB routes ERROR+ records into system_logs alongside stdout. The
// returned handler must be stopped on shutdown to flush what is buffered.
func AttachDB(db *gorm.DB, stdout slog.Handler) *DBHandler {
	dbHandler := NewDBHandler(db, stdout)
	slog.SetDefault(slog.New(NewMultiHandler(stdout, dbHandler)))
	return dbHandler
}

func newStdout(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}
