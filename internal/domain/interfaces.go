package domain

import (
	"io"
	"time"
)

// ConfigProvider defines operations for reading and writing configuration.
type ConfigProvider interface {
	// Get returns the value for a configuration key.
	Get(key string) (string, bool)

	// GetAll returns all configuration values.
	GetAll() (map[string]string, error)

	// Set sets a configuration value.
	Set(key, value string) error

	// Unset removes a configuration value.
	Unset(key string) error
}

// Logger defines logging operations.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)

	// Close closes the logger.
	Close() error
}

// OutputWriter defines output operations.
type OutputWriter interface {
	io.Writer

	// Printf formats and prints to the output.
	Printf(format string, args ...any) (int, error)

	// Println prints a line to the output.
	Println(args ...any) (int, error)
}

// Styler defines text styling operations.
type Styler interface {
	// Enabled returns true if styling is enabled.
	Enabled() bool

	Success(text string) string
	Warning(text string) string
	Error(text string) string
	Info(text string) string
	Muted(text string) string
	Header(text string) string
}

// HistoryEntry is one recorded dispatch.
type HistoryEntry struct {
	ID        string
	Actor     string
	Input     string
	Command   string
	Outcome   Outcome
	ErrorKind string
	Duration  time.Duration
	CreatedAt time.Time
}

// Outcome classifies how a dispatch ended.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// HistoryFilter narrows a history listing.
type HistoryFilter struct {
	Actor   string
	Outcome Outcome
	Since   time.Time
	Limit   int
}

// HistoryStore persists dispatch history.
type HistoryStore interface {
	// Record appends an entry. A missing ID or timestamp is filled in.
	Record(entry HistoryEntry) (HistoryEntry, error)

	// List returns entries matching the filter, newest first.
	List(filter HistoryFilter) ([]HistoryEntry, error)

	// Prune deletes entries older than the cutoff and returns how many were removed.
	Prune(before time.Time) (int64, error)

	Close() error
}
