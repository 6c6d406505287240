// Package logger provides diagnostic logging for relnotes.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger provides leveled, structured logging.
type Logger struct {
	internal *logrus.Entry
}

// NewLoggerTo creates a logger writing to w at the specified level.
// Unknown levels fall back to warn.
func NewLoggerTo(w io.Writer, level string) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(ParseLevel(level))
	return &Logger{internal: logrus.NewEntry(l)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return NewLoggerTo(io.Discard, "error")
}

// ParseLevel maps a level name to a logrus level.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// Info logs an info level message.
func (l *Logger) Info(msg string, args ...any) {
	l.internal.WithFields(fields(args)).Info(msg)
}

// Error logs an error level message.
func (l *Logger) Error(msg string, args ...any) {
	l.internal.WithFields(fields(args)).Error(msg)
}

// Debug logs a debug level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.internal.WithFields(fields(args)).Debug(msg)
}

// Warn logs a warning level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.internal.WithFields(fields(args)).Warn(msg)
}

// With creates a child logger with the given key/value pairs.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{internal: l.internal.WithFields(fields(args))}
}

// fields turns alternating key/value arguments into logrus fields. A trailing
// key without a value is recorded under "!BADKEY".
func fields(args []any) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || i+1 >= len(args) {
			f["!BADKEY"] = args[i]
			continue
		}
		f[key] = args[i+1]
	}
	return f
}
