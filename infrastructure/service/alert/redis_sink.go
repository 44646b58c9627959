package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/clubly/clubly/application/port/outbound"
)

const publishTimeout = 2 * time.Second

// RedisSink publishes operational alerts to a redis channel that the
// on-call tooling subscribes to. Emit is fire-and-forget: it publishes
// from its own goroutine with a detached context, so a slow or dead
// redis can never stall or fail the caller's primary path.
type RedisSink struct {
	client  *redis.Client
	channel string
	logger  *logrus.Logger
}

type SinkConfig struct {
	Enabled  bool
	RedisURL string
	Channel  string
}

// NewSink returns a redis-backed sink, or a noop when disabled.
func NewSink(config SinkConfig, logger *logrus.Logger) (outbound.AlertSink, error) {
	if !config.Enabled {
		logger.Info("Ops alert sink disabled")
		return &NoopSink{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithField("channel", config.Channel).Info("Ops alert sink initialized")

	return &RedisSink{
		client:  client,
		channel: config.Channel,
		logger:  logger,
	}, nil
}

func (s *RedisSink) Emit(ctx context.Context, alert outbound.Alert) {
	// The caller's context may already be cancelled by the time the
	// alert fires; the publish gets its own deadline instead.
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.WithField("panic", r).Warn("Alert publish panicked")
			}
		}()

		payload, err := json.Marshal(alert)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to marshal alert")
			return
		}

		pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := s.client.Publish(pubCtx, s.channel, payload).Err(); err != nil {
			s.logger.WithError(err).WithField("kind", alert.Kind).Warn("Failed to publish alert")
		}
	}()
}

// NoopSink drops alerts. Used when the side channel is disabled and in
// tests that do not observe alerts.
type NoopSink struct{}

func (*NoopSink) Emit(ctx context.Context, alert outbound.Alert) {}
