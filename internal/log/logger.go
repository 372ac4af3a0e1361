// Package log has the leveled logger used by the CLI, the SDK and the calculator.
package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
)

type Logger interface {
	Debug(msg string)
	Debugf(fmt string, v ...any)

	Info(msg string)
	Infof(fmt string, v ...any)

	Warn(msg string)
	Warnf(fmt string, v ...any)

	Error(msg string)
	Errorf(fmt string, v ...any)
}

var _ Logger = &DefaultLogger{}

// DefaultLogger writes human-readable entries through apex/log.
type DefaultLogger struct {
	*log.Logger
}

// NewDefaultLogger logs to w at info level.
func NewDefaultLogger(w io.Writer) *DefaultLogger {
	return &DefaultLogger{
		Logger: &log.Logger{
			Handler: cli.New(w),
			Level:   log.InfoLevel,
		},
	}
}

// Discard drops every entry.
var Discard Logger = &DefaultLogger{
	Logger: &log.Logger{Handler: discard.New(), Level: log.FatalLevel},
}

// Verbosity values accepted by SetLevel besides the apex level names.
const (
	VerbosityQuiet = "quiet"
	VerbosityInfo  = "info"
	VerbosityDebug = "debug"
)

// SetLevel accepts quiet, or any apex level name (debug, info, warn, error).
func (l *DefaultLogger) SetLevel(requested string) error {
	if strings.EqualFold(requested, VerbosityQuiet) {
		l.Level = log.ErrorLevel
		return nil
	}
	level, err := log.ParseLevel(strings.ToLower(requested))
	if err != nil {
		return fmt.Errorf("invalid verbosity %q: %w", requested, err)
	}
	l.Level = level
	return nil
}

// LogLevel returns the current threshold.
func (l *DefaultLogger) LogLevel() log.Level {
	return l.Level
}

// OrDiscard returns l, or Discard when l is nil or a nil *DefaultLogger.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard
	}
	if d, ok := l.(*DefaultLogger); ok && d == nil {
		return Discard
	}
	return l
}
