package internal

import (
	"io"
	"log"
	"os"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger is a leveled logger handed to each component that reports
// non-fatal problems. A nil *Logger discards everything.
type Logger struct {
	level LogLevel
	out   *log.Logger
}

// NewLogger creates a logger writing to w at the given level
func NewLogger(w io.Writer, level LogLevel) *Logger {
	return &Logger{
		level: level,
		out:   log.New(w, "", log.LstdFlags),
	}
}

// NewStderrLogger creates the default CLI logger
func NewStderrLogger(verbose bool) *Logger {
	l := NewLogger(os.Stderr, LogLevelInfo)
	l.SetVerbose(verbose)
	return l
}

// Discard returns a logger that drops all output
func Discard() *Logger {
	return NewLogger(io.Discard, LogLevelError)
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level LogLevel) {
	if l == nil {
		return
	}
	l.level = level
}

// Level returns the current log level
func (l *Logger) Level() LogLevel {
	if l == nil {
		return LogLevelError
	}
	return l.level
}

// SetVerbose enables verbose (debug) logging
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.SetLevel(LogLevelDebug)
	} else {
		l.SetLevel(LogLevelInfo)
	}
}

func (l *Logger) logf(level LogLevel, prefix, format string, args ...interface{}) {
	if l == nil || l.level < level {
		return
	}
	l.out.Printf(prefix+format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogLevelError, "[ERROR] ", format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogLevelWarn, "[WARN] ", format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogLevelInfo, "[INFO] ", format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogLevelDebug, "[DEBUG] ", format, args...)
}
