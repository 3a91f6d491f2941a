// ABOUTME: Logger implementation backed by logrus with optional rotating file output
// ABOUTME: Translates field maps into logrus fields for structured logging

package logrus

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is a logrus level name, unknown names fall back to info
	Level string
	// Format is "json" or "text"
	Format string
	// File enables rotating file output in addition to stdout
	File string
}

// Logger implements interfaces.Logger using logrus
type Logger struct {
	entry  *logrus.Logger
	closer io.Closer
}

// New creates a logger from opts
func New(opts Options) *Logger {
	base := logrus.New()

	if strings.EqualFold(opts.Format, "json") {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	l := &Logger{entry: base}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		base.SetOutput(io.MultiWriter(os.Stdout, rotator))
		l.closer = rotator
	} else {
		base.SetOutput(os.Stdout)
	}
	return l
}

// NewWithWriter creates a logger writing to w, used by tests
func NewWithWriter(w io.Writer, opts Options) *Logger {
	l := New(Options{Level: opts.Level, Format: opts.Format})
	l.entry.SetOutput(w)
	return l
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
