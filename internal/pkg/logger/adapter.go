package logger

import "masonry_tracker/internal/app/port"

// slogAdapter implements port.Logger on top of the package-level helpers.
type slogAdapter struct{}

// NewSlogAdapter returns a port.Logger backed by the global slog logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// Info logs at InfoLevel.
func (a *slogAdapter) Info(msg string, args ...any) {
	Info(msg, args...)
}

// Debug logs at DebugLevel.
func (a *slogAdapter) Debug(msg string, args ...any) {
	Debug(msg, args...)
}

// Warn logs at WarnLevel.
func (a *slogAdapter) Warn(msg string, args ...any) {
	Warn(msg, args...)
}

// Error logs at ErrorLevel.
func (a *slogAdapter) Error(msg string, args ...any) {
	Error(msg, args...)
}
