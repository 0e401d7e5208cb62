// Package logger provides structured logging for bench.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hoaproject/Bench/pkg/bench"
	"github.com/sirupsen/logrus"
)

// Logger wraps logrus logger
type Logger struct {
	log *logrus.Logger
}

// Entry wraps logrus entry for method chaining
type Entry struct {
	entry *logrus.Entry
	level logrus.Level
}

// New creates a new logger instance
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return New("panic", io.Discard)
}

// ParseLevel parses a level name, falling back to info
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Level returns the active level
func (l *Logger) Level() logrus.Level {
	return l.log.GetLevel()
}

// Debugf logs a formatted debug message. It lets a Logger serve as a bench.Logger.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

// Debug starts a debug entry
func (l *Logger) Debug() *Entry {
	return l.at(logrus.DebugLevel)
}

// Info starts an info entry
func (l *Logger) Info() *Entry {
	return l.at(logrus.InfoLevel)
}

// Warn starts a warning entry
func (l *Logger) Warn() *Entry {
	return l.at(logrus.WarnLevel)
}

// Error starts an error entry
func (l *Logger) Error() *Entry {
	return l.at(logrus.ErrorLevel)
}

func (l *Logger) at(level logrus.Level) *Entry {
	return &Entry{entry: logrus.NewEntry(l.log), level: level}
}

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Float adds a float field
func (e *Entry) Float(key string, value float64) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Err adds an error field
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field in milliseconds
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	ms := float64(duration.Microseconds()) / 1000.0
	e.entry = e.entry.WithField(key, ms)
	return e
}

// Mark adds the id, state and elapsed time of a mark
func (e *Entry) Mark(m *bench.Mark) *Entry {
	return e.Str("mark", m.ID()).
		Str("state", m.State().String()).
		Dur("elapsed_ms", m.Diff())
}

// Msg logs the message with accumulated fields
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}
