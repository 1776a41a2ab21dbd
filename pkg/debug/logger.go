// Package debug provides leveled diagnostics for the playback library.
// Configuration problems in this library are reported here and never
// escalate to errors or panics: a half-configured controller is a normal
// authoring-time state.
package debug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a diagnostic message.
type Level int

const (
	// LevelDebug is for detailed tracing.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for recoverable configuration problems.
	LevelWarn
	// LevelError is for failures at the output boundary.
	LevelError
	// LevelOff disables all output.
	LevelOff
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled, optionally timestamped diagnostics.
type Logger struct {
	mu          sync.Mutex
	output      io.Writer
	level       Level
	prefix      string
	includeTime bool
}

// New creates a logger writing to output with the given prefix.
func New(output io.Writer, prefix string) *Logger {
	return &Logger{
		output:      output,
		prefix:      prefix,
		level:       LevelWarn,
		includeTime: true,
	}
}

var defaultLogger = New(os.Stderr, "voice")

// Default returns the process-wide logger instance.
func Default() *Logger {
	return defaultLogger
}

// SetOutput sets the output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum level that gets written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetIncludeTime toggles the timestamp field.
func (l *Logger) SetIncludeTime(include bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.includeTime = include
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level || l.output == nil {
		return
	}

	var sb strings.Builder
	if l.includeTime {
		sb.WriteString(time.Now().Format("2006-01-02 15:04:05.000 "))
	}
	fmt.Fprintf(&sb, "[%s] ", level)
	if l.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", l.prefix)
	}
	msg := fmt.Sprintf(format, args...)
	sb.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		sb.WriteString("\n")
	}
	l.output.Write([]byte(sb.String()))
}

// Debug logs a tracing message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a recoverable problem.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs a failure.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Debug logs a tracing message on the default logger.
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// Info logs an informational message on the default logger.
func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

// Warn logs a recoverable problem on the default logger.
func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

// Error logs a failure on the default logger.
func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}
