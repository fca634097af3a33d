package log

import "fmt"

// Logger is the structured logger used across the toolkit.
// Callers log addresses, paths and chain ids, not keys. As a backstop the
// zap implementation replaces values logged under secret keys (see IsSecretKey).
type Logger interface {
	// Debug logs low-level details such as verification mismatches.
	Debug(msg string, keysAndValues ...any)
	// Info logs routine events.
	Info(msg string, keysAndValues ...any)
	// Warn logs unexpected but recoverable situations, e.g. a fallback chain profile.
	Warn(msg string, keysAndValues ...any)
	// Error logs failures of an operation.
	Error(msg string, keysAndValues ...any)
	// Fatal logs an unrecoverable failure and may terminate the program.
	Fatal(msg string, keysAndValues ...any)
	// WithKV returns a logger that adds the pair to every future entry.
	WithKV(key string, value any) Logger
	// GetAllKV returns the persistent key-value pairs of this logger.
	GetAllKV() []any
	// WithName returns a child logger; names are joined with dots.
	WithName(name string) Logger
	// Name returns the logger's name.
	Name() string
	// AddCallerSkip returns a logger that skips extra frames when reporting the caller.
	AddCallerSkip(skip int) Logger
}

// Level represents the severity level of a log message.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// ParseLevel validates a textual level.
func ParseLevel(s string) (Level, error) {
	switch l := Level(s); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal:
		return l, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}
