package logger

// Logger is the logging surface available to the service layers. The core
// computation packages do not log; adapters live under infra/logger.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a debug message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	// Infow logs an info message with structured fields.
	Infow(msg string, fields map[string]any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// StructuredLogger is the subset of Logger used by components that only
// emit structured records.
type StructuredLogger interface {
	Debugw(msg string, fields map[string]any)
	Infow(msg string, fields map[string]any)
}
