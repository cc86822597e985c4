package logger

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

// RequestIDKey is the context key under which the request id is stored
const RequestIDKey ctxKey = "requestID"

// Config holds logger configuration
type Config struct {
	Level       zapcore.Level
	JSONFormat  bool
	ServiceName string
}

// DefaultConfig returns logger configuration from the environment
func DefaultConfig() *Config {
	level := zapcore.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level = parseLevel(lvl)
	}

	return &Config{
		Level:       level,
		JSONFormat:  os.Getenv("LOG_FORMAT") == "json",
		ServiceName: os.Getenv("SERVICE_NAME"),
	}
}

// Logger is a structured logger backed by zap
type Logger struct {
	sugar *zap.SugaredLogger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// New creates a new logger with given config
func New(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}

	var zc zap.Config
	if config.JSONFormat {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(config.Level)
	zc.EncoderConfig.TimeKey = "timestamp"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		base = zap.NewNop()
	}
	if config.ServiceName != "" {
		base = base.With(zap.String("service", config.ServiceName))
	}
	return &Logger{sugar: base.Sugar()}
}

// NewWithZap wraps an existing zap logger
func NewWithZap(z *zap.Logger) *Logger {
	return &Logger{sugar: z.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// Default returns the default logger singleton
func Default() *Logger {
	once.Do(func() {
		defaultLogger = New(nil)
	})
	return defaultLogger
}

// Sugar exposes the underlying zap logger for libraries that take a printf-style logger
func (l *Logger) Sugar() *zap.SugaredLogger {
	return l.sugar.Desugar().WithOptions(zap.AddCallerSkip(-1)).Sugar()
}

// With creates a child logger with an additional field
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(key, value)}
}

// WithFields creates a child logger with multiple additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{sugar: l.sugar.With(args...)}
}

// WithError adds error field to logger
func (l *Logger) WithError(err error) *Logger {
	return &Logger{sugar: l.sugar.With(zap.Error(err))}
}

// WithContext extracts the request id from context
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return l.With("request_id", requestID)
	}
	return l
}

// Log methods

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugf(msg, args...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.sugar.Infof(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.sugar.Warnf(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.sugar.Errorf(msg, args...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// ============================================================
// Request Logger - HTTP request/response logging
// ============================================================

// RequestLog represents an HTTP request log
type RequestLog struct {
	Method       string
	Path         string
	Status       int
	Duration     time.Duration
	ClientIP     string
	UserAgent    string
	RequestID    string
	ResponseSize int64
	Error        string
}

// LogRequest logs an HTTP request
func (l *Logger) LogRequest(req RequestLog) {
	msg := fmt.Sprintf("%s %s -> %d (%s)",
		req.Method, req.Path, req.Status, req.Duration)

	fields := map[string]interface{}{
		"method":        req.Method,
		"path":          req.Path,
		"status":        req.Status,
		"duration_ms":   req.Duration.Milliseconds(),
		"response_size": req.ResponseSize,
	}
	if req.ClientIP != "" {
		fields["client_ip"] = req.ClientIP
	}
	if req.UserAgent != "" {
		fields["user_agent"] = req.UserAgent
	}
	if req.RequestID != "" {
		fields["request_id"] = req.RequestID
	}
	if req.Error != "" {
		fields["error"] = req.Error
	}

	entry := l.WithFields(fields)
	switch {
	case req.Status >= 500:
		entry.sugar.Error(msg)
	case req.Status >= 400:
		entry.sugar.Warn(msg)
	default:
		entry.sugar.Info(msg)
	}
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ============================================================
// Package-level convenience functions
// ============================================================

func Debug(msg string, args ...interface{}) { Default().Debug(msg, args...) }
func Info(msg string, args ...interface{})  { Default().Info(msg, args...) }
func Warn(msg string, args ...interface{})  { Default().Warn(msg, args...) }
func Error(msg string, args ...interface{}) { Default().Error(msg, args...) }

func With(key string, value interface{}) *Logger       { return Default().With(key, value) }
func WithFields(fields map[string]interface{}) *Logger { return Default().WithFields(fields) }
func WithError(err error) *Logger                      { return Default().WithError(err) }
func WithContext(ctx context.Context) *Logger          { return Default().WithContext(ctx) }
