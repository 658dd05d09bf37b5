// Package logging provides a leveled printf-style logger backed by zap.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
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

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		// Above every level we emit.
		return zapcore.FatalLevel
	}
}

// ParseLevel parses a log level string. Unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger. The zero value is not usable; use New or Discard.
type Logger struct {
	mu     sync.Mutex
	level  zap.AtomicLevel
	fields []zap.Field
	sugar  *zap.SugaredLogger
}

// New creates a logger writing to stderr.
func New(level Level) *Logger {
	l := &Logger{level: zap.NewAtomicLevelAt(level.zap())}
	l.build(os.Stderr)
	return l
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{
		level: zap.NewAtomicLevelAt(zapcore.FatalLevel),
		sugar: zap.NewNop().Sugar(),
	}
}

func (l *Logger) build(w io.Writer) {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), l.level)
	l.sugar = zap.New(core).With(l.fields...).Sugar()
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.build(w)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zap())
}

// With returns a child logger that adds a key/value pair to every entry.
// The child shares the parent's level.
func (l *Logger) With(key string, value any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	f := zap.Any(key, value)
	return &Logger{
		level:  l.level,
		fields: append(append([]zap.Field(nil), l.fields...), f),
		sugar:  l.sugar.With(f),
	}
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar.Sync()
}

func (l *Logger) logger() *zap.SugaredLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.logger().Debugf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.logger().Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.logger().Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.logger().Errorf(format, args...)
}
