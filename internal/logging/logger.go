// Package logging provides a small leveled logger tagged with a run id.
package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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

// LevelFor picks the level implied by the common --debug and --quiet flags.
func LevelFor(debug, quiet bool) Level {
	switch {
	case debug:
		return LevelDebug
	case quiet:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// Logger writes one line per entry:
//
//	2006-01-02T15:04:05Z07:00 WARN run=1a2b3c4d message
type Logger struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
	run   string
	now   func() time.Time
}

// New creates a logger writing entries at or above level to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{w: w, level: level, run: NewRunID(), now: time.Now}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{w: io.Discard, level: LevelError + 1, now: time.Now}
}

// NewRunID returns a short id used to group the lines of one invocation.
func NewRunID() string {
	return uuid.NewString()[:8]
}

// RunID returns the logger's run id.
func (l *Logger) RunID() string {
	return l.run
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && level >= l.level
}

func (l *Logger) log(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s run=%s %s\n", l.now().Format(time.RFC3339), level, l.run, msg)
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, args ...any) { l.log(LevelDebug, format, args...) }

// Infof logs an info message.
func (l *Logger) Infof(format string, args ...any) { l.log(LevelInfo, format, args...) }

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...any) { l.log(LevelWarn, format, args...) }

// Errorf logs an error.
func (l *Logger) Errorf(format string, args ...any) { l.log(LevelError, format, args...) }
