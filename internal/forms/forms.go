// Package forms coerces untyped submitted strings into model values and
// collects user-visible validation messages.
package forms

import (
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// ValidationError aborts a write. Values echoes what the user submitted so
// the form can be shown again unchanged.
type ValidationError struct {
	Messages []string
	Values   map[string]string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// Checker accumulates failed rules.
type Checker struct {
	messages []string
}

// Require records msg when cond is false.
func (c *Checker) Require(cond bool, msg string) {
	if !cond {
		c.messages = append(c.messages, msg)
	}
}

func (c *Checker) Add(msg string) {
	c.messages = append(c.messages, msg)
}

func (c *Checker) OK() bool { return len(c.messages) == 0 }

// Err returns nil when every rule passed.
func (c *Checker) Err(values map[string]string) error {
	if c.OK() {
		return nil
	}
	return &ValidationError{Messages: c.messages, Values: values}
}

// Invalid builds a single-message validation error.
func Invalid(msg string, values map[string]string) error {
	return &ValidationError{Messages: []string{msg}, Values: values}
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(raw), time.UTC)
}

// OptionalDate returns nil for blank or malformed input.
func OptionalDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := ParseDate(raw)
	if err != nil {
		return nil
	}
	return &d
}

// ParseDateTime combines separately submitted date and HH:MM parts.
func ParseDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), time.UTC)
}

// IntOr parses a positive integer, falling back on anything else.
func IntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Bool reads checkbox-style values ("on", "true", "1", "yes").
func Bool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
