package logger

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// New builds a logger with the given level writing to stdout. When file is
// non-empty, entries are also written there with rotation. The result is
// constructed once in main and passed into each component.
func New(level, file string) *Logger {
	return newZapLogger(level, file)
}
