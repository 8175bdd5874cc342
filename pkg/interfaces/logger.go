package interfaces

import "context"

// Logger is the structured logging contract used across the application and
// infrastructure layers. Implementations live in pkg/logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// WithContext returns a logger scoped to the request context.
	WithContext(ctx context.Context) Logger

	// WithFields returns a logger that attaches the fields to every entry.
	WithFields(fields ...Field) Logger
}

// Field is one structured key/value pair on a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Error creates an error field under the "error" key.
func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
