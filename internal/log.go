package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// ParseLogLevel maps ERROR, WARN, INFO, DEBUG and TRACE to a level; anything
// else is INFO.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError
	case "WARN":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	case "TRACE":
		return LogLevelTrace
	}
	return LogLevelInfo
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelTrace:
		return zerolog.TraceLevel
	}
	return zerolog.InfoLevel
}

// Logger provides leveled logging
type Logger struct {
	level  LogLevel
	logger zerolog.Logger
}

// NewLogger creates a console logger on stderr with the specified level
func NewLogger(level LogLevel) *Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return NewLoggerWithWriter(level, output)
}

// NewLoggerWithWriter writes JSON lines to w; used by tests and non-tty sinks.
func NewLoggerWithWriter(level LogLevel, w io.Writer) *Logger {
	zl := zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger()
	return &Logger{level: level, logger: zl}
}

// NewDefaultLogger creates a logger based on LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	return NewLogger(ParseLogLevel(os.Getenv("LOG_LEVEL")))
}

// With returns a child logger carrying a key/value on every line.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{level: l.level, logger: l.logger.With().Interface(key, value).Logger()}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Error().Msg(fmt.Sprintf(format, args...))
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.logger.Trace().Msg(fmt.Sprintf(format, args...))
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Zerolog returns the underlying zerolog.Logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
