// internal/logger/logger.go
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  = newBase(zapcore.Lock(os.Stdout))
)

func newBase(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), ws, level)
	return zap.New(core).Sugar()
}

// SetOutput redirects all log output. Used by tests and by callers that
// want logs on a file instead of stdout.
func SetOutput(ws zapcore.WriteSyncer) {
	base = newBase(ws)
}

// SetLevel sets the minimum log level that will be printed
func SetLevel(l LogLevel) {
	switch l {
	case DebugLevel:
		level.SetLevel(zapcore.DebugLevel)
	case WarnLevel:
		level.SetLevel(zapcore.WarnLevel)
	case ErrorLevel:
		level.SetLevel(zapcore.ErrorLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// SetLevelFromString sets the log level from a string (debug, info, warn, error)
func SetLevelFromString(s string) {
	switch strings.ToLower(s) {
	case "debug":
		SetLevel(DebugLevel)
	case "info", "":
		SetLevel(InfoLevel)
	case "warn", "warning":
		SetLevel(WarnLevel)
	case "error":
		SetLevel(ErrorLevel)
	default:
		Warn("unknown log level %s, using info", s)
		SetLevel(InfoLevel)
	}
}

// GetLevel returns the current log level as a string
func GetLevel() string {
	switch level.Level() {
	case zapcore.DebugLevel:
		return "debug"
	case zapcore.InfoLevel:
		return "info"
	case zapcore.WarnLevel:
		return "warn"
	case zapcore.ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

func Debug(format string, v ...interface{}) { base.Debugf(format, v...) }
func Info(format string, v ...interface{})  { base.Infof(format, v...) }
func Warn(format string, v ...interface{})  { base.Warnf(format, v...) }
func Error(format string, v ...interface{}) { base.Errorf(format, v...) }

// Fatal logs and exits with status 1.
func Fatal(format string, v ...interface{}) { base.Fatalf(format, v...) }

// Sync flushes buffered entries. Call before exit.
func Sync() { _ = base.Sync() }

// WithPrefix returns a logger with a prefix
func WithPrefix(prefix string) *PrefixLogger {
	return &PrefixLogger{prefix: prefix}
}

// PrefixLogger adds a prefix to all log messages
type PrefixLogger struct {
	prefix string
}

func (l *PrefixLogger) Debug(format string, v ...interface{}) { Debug(l.prefix+format, v...) }
func (l *PrefixLogger) Info(format string, v ...interface{})  { Info(l.prefix+format, v...) }
func (l *PrefixLogger) Warn(format string, v ...interface{})  { Warn(l.prefix+format, v...) }
func (l *PrefixLogger) Error(format string, v ...interface{}) { Error(l.prefix+format, v...) }
func (l *PrefixLogger) Fatal(format string, v ...interface{}) { Fatal(l.prefix+format, v...) }

func init() {
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		SetLevelFromString(s)
	}
}
