package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field is a structured logging key/value pair. Fields are passed to the
// Logger methods to attach context to a log entry without string
// concatenation at call sites.
type Field struct {
	Key   string
	Value any
}

// String creates a string-valued field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int-valued field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64-valued field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64-valued field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a bool-valued field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Err creates an error-valued field under the conventional "error" key.
// A nil error is preserved as a nil value.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used throughout the application.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs a message at debug level with optional fields.
	Debug(msg string, fields ...Field)
	// Info logs a message at info level with optional fields.
	Info(msg string, fields ...Field)
	// Error logs a message at error level with the given error and fields.
	Error(msg string, err error, fields ...Field)
	// Printf logs a formatted message at info level (fmt.Sprintf semantics).
	Printf(format string, args ...any)
	// Println logs its arguments at info level (fmt.Sprintln semantics).
	Println(args ...any)
}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a ZerologAdapter writing structured JSON to w, tagged
// with the given component name.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// NewDefaultLogger creates a ZerologAdapter writing human-readable output
// to stderr. This is the logger used when no custom destination is
// configured.
func NewDefaultLogger() *ZerologAdapter {
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	zl := zerolog.New(console).With().Timestamp().Logger()
	return &ZerologAdapter{logger: zl}
}

// Debug logs a message at debug level with optional fields.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	a.applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Info logs a message at info level with optional fields.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	a.applyFields(a.logger.Info(), fields).Msg(msg)
}

// Error logs a message at error level with the given error and fields.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	a.applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (a *ZerologAdapter) Printf(format string, args ...any) {
	a.logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Println logs its arguments at info level.
func (a *ZerologAdapter) Println(args ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// applyFields attaches each field to the zerolog event using the most
// specific typed method available, falling back to Interface.
func (a *ZerologAdapter) applyFields(ev *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ev = ev.Str(f.Key, v)
		case int:
			ev = ev.Int(f.Key, v)
		case int64:
			ev = ev.Int64(f.Key, v)
		case uint64:
			ev = ev.Uint64(f.Key, v)
		case float64:
			ev = ev.Float64(f.Key, v)
		case bool:
			ev = ev.Bool(f.Key, v)
		case error:
			ev = ev.AnErr(f.Key, v)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	return ev
}

// StdLoggerAdapter adapts the standard library log.Logger to the Logger
// interface. It is used where a dependency hands us a *log.Logger.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps an existing standard library logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// Debug logs a message at debug level with optional fields.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Println("[DEBUG]", msg, formatFields(fields))
}

// Info logs a message at info level with optional fields.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Println("[INFO]", msg, formatFields(fields))
}

// Error logs a message at error level with the given error and fields.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	a.logger.Println("[ERROR]", msg, formatFields(fields))
}

// Printf logs a formatted message at info level.
func (a *StdLoggerAdapter) Printf(format string, args ...any) {
	a.logger.Printf("[INFO] "+format, args...)
}

// Println logs its arguments at info level.
func (a *StdLoggerAdapter) Println(args ...any) {
	a.logger.Println(append([]any{"[INFO]"}, args...)...)
}

// formatFields renders fields as "key=value" pairs for plain-text output.
func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}
	return strings.Join(parts, " ")
}

// NopLogger discards all log output. Useful in tests and quiet mode.
type NopLogger struct{}

// Debug discards the message.
func (NopLogger) Debug(string, ...Field) {}

// Info discards the message.
func (NopLogger) Info(string, ...Field) {}

// Error discards the message.
func (NopLogger) Error(string, error, ...Field) {}

// Printf discards the message.
func (NopLogger) Printf(string, ...any) {}

// Println discards the message.
func (NopLogger) Println(...any) {}

// Compile-time interface checks.
var (
	_ Logger = (*ZerologAdapter)(nil)
	_ Logger = (*StdLoggerAdapter)(nil)
	_ Logger = NopLogger{}
)
