package logger

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clubly/clubly/application/port/outbound"
)

type correlationKey struct{}

// WithCorrelationID stores a request correlation id for log enrichment.
func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationKey{}, cid)
}

// CorrelationIDFromContext returns the correlation id, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	if cid, ok := ctx.Value(correlationKey{}).(string); ok {
		return cid
	}
	return ""
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	Level       string
	Format      string
	ServiceName string
}

// structuredLogger implements outbound.Logger on top of logrus.
// All methods are best effort: logging never propagates a failure back
// into the caller's control flow.
type structuredLogger struct {
	logger      *logrus.Logger
	serviceName string
}

// NewStructuredLogger builds the process-wide diagnostics logger.
func NewStructuredLogger(config LoggerConfig) outbound.Logger {
	logrusLogger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrusLogger.SetLevel(level)

	if config.Format == "json" {
		logrusLogger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		logrusLogger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	}

	logrusLogger.SetOutput(os.Stdout)

	return &structuredLogger{
		logger:      logrusLogger,
		serviceName: config.ServiceName,
	}
}

func (l *structuredLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields).Debug(message)
}

func (l *structuredLogger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields).Info(message)
}

func (l *structuredLogger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields).Warn(message)
}

func (l *structuredLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	entry := l.entry(ctx, fields)
	if err != nil {
		entry = entry.WithField("error", err.Error())
	}
	entry.Error(message)
}

// Critical logs at error level with a severity marker that alerting
// rules key on. logrus has no level above error short of fatal, and a
// diagnostics path must never terminate the process.
func (l *structuredLogger) Critical(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields).WithField("severity", "CRITICAL").Error(message)
}

func (l *structuredLogger) entry(ctx context.Context, fields map[string]interface{}) *logrus.Entry {
	entry := l.logger.WithField("service", l.serviceName)
	if cid := CorrelationIDFromContext(ctx); cid != "" {
		entry = entry.WithField("correlation_id", cid)
	}
	if len(fields) > 0 {
		entry = entry.WithFields(logrus.Fields(fields))
	}
	return entry
}
