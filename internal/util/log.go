package util

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug": LevelDebug,
	"info":  LevelInfo,
	"warn":  LevelWarn,
	"error": LevelError,
}

var charmLevels = map[LogLevel]log.Level{
	LevelDebug: log.DebugLevel,
	LevelInfo:  log.InfoLevel,
	LevelWarn:  log.WarnLevel,
	LevelError: log.ErrorLevel,
}

// Logger wraps a charmbracelet logger with the level names used across stackwm.
type Logger struct {
	base *log.Logger
}

// NewLogger creates a level-aware logger writing to stderr.
func NewLogger(level LogLevel) *Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a level-aware logger writing to the provided destination.
func NewLoggerWithWriter(level LogLevel, w io.Writer) *Logger {
	base := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           charmLevels[level],
	})
	return &Logger{base: base}
}

func (l *Logger) SetLevel(level LogLevel) {
	l.base.SetLevel(charmLevels[level])
}

func (l *Logger) Level() LogLevel {
	current := l.base.GetLevel()
	for lvl, charm := range charmLevels {
		if charm == current {
			return lvl
		}
	}
	return LevelInfo
}

// With returns a logger that prefixes every message with name.
func (l *Logger) With(name string) *Logger {
	return &Logger{base: l.base.WithPrefix(name)}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.base.Debugf(format, args...)
}
func (l *Logger) Infof(format string, args ...interface{}) {
	l.base.Infof(format, args...)
}
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.base.Warnf(format, args...)
}
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.base.Errorf(format, args...)
}

// ParseLogLevel converts a string into a LogLevel, defaulting to info.
func ParseLogLevel(s string) LogLevel {
	if lvl, ok := levelNames[strings.ToLower(s)]; ok {
		return lvl
	}
	return LevelInfo
}
