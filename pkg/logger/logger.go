// Package logger provides structured logging for the library system.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface consumed throughout the system
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

// ZapLogger implements Logger on top of zap
type ZapLogger struct {
	zl *zap.Logger
}

// New creates a production logger at the given level
func New(level string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &ZapLogger{zl: zl}, nil
}

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() Logger {
	return &ZapLogger{zl: zap.NewNop()}
}

// Debug logs debug level messages
func (l *ZapLogger) Debug(msg string, fields ...map[string]interface{}) {
	l.zl.Debug(msg, flatten(fields)...)
}

// Info logs info level messages
func (l *ZapLogger) Info(msg string, fields ...map[string]interface{}) {
	l.zl.Info(msg, flatten(fields)...)
}

// Warn logs warning level messages
func (l *ZapLogger) Warn(msg string, fields ...map[string]interface{}) {
	l.zl.Warn(msg, flatten(fields)...)
}

// Error logs error level messages
func (l *ZapLogger) Error(msg string, err error, fields ...map[string]interface{}) {
	zf := flatten(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.zl.Error(msg, zf...)
}

// Fatal logs fatal level messages and exits
func (l *ZapLogger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	zf := flatten(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.zl.Fatal(msg, zf...)
}

// WithFields returns a logger that attaches the fields to every entry
func (l *ZapLogger) WithFields(fields map[string]interface{}) Logger {
	return &ZapLogger{zl: l.zl.With(flatten([]map[string]interface{}{fields})...)}
}

func flatten(fields []map[string]interface{}) []zap.Field {
	var zf []zap.Field
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			zf = append(zf, zap.Any(key, value))
		}
	}
	return zf
}
