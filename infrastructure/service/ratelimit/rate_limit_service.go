package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/clubly/clubly/application/port/outbound"
)

// loginRateLimiter throttles failed login attempts per key with a
// sliding redis counter. Exceeding the limit blocks the key for the
// configured duration.
type loginRateLimiter struct {
	redisClient   *redis.Client
	logger        *logrus.Logger
	maxAttempts   int
	window        time.Duration
	blockDuration time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	RedisURL      string
	MaxAttempts   int
	Window        time.Duration
	BlockDuration time.Duration
}

// NewLoginRateLimiter returns a redis-backed limiter, or a noop when
// disabled.
func NewLoginRateLimiter(config RateLimitConfig, logger *logrus.Logger) (outbound.LoginRateLimiter, error) {
	if !config.Enabled {
		logger.Info("Login rate limiting disabled")
		return &noopLoginRateLimiter{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisClient := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"max_attempts":   config.MaxAttempts,
		"window":         config.Window,
		"block_duration": config.BlockDuration,
	}).Info("Login rate limiting initialized")

	return &loginRateLimiter{
		redisClient:   redisClient,
		logger:        logger,
		maxAttempts:   config.MaxAttempts,
		window:        config.Window,
		blockDuration: config.BlockDuration,
	}, nil
}

func (s *loginRateLimiter) IsBlocked(ctx context.Context, key string) (bool, error) {
	blocked, err := s.redisClient.Exists(ctx, blockKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block state: %w", err)
	}
	return blocked > 0, nil
}

func (s *loginRateLimiter) RegisterFailure(ctx context.Context, key string) error {
	attempts, err := s.redisClient.Incr(ctx, attemptKey(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts == 1 {
		if err := s.redisClient.Expire(ctx, attemptKey(key), s.window).Err(); err != nil {
			return fmt.Errorf("failed to set attempt window: %w", err)
		}
	}
	if int(attempts) >= s.maxAttempts {
		if err := s.redisClient.Set(ctx, blockKey(key), "1", s.blockDuration).Err(); err != nil {
			return fmt.Errorf("failed to block key: %w", err)
		}
		s.logger.WithFields(logrus.Fields{
			"key":      key,
			"attempts": attempts,
		}).Warn("Login key blocked")
	}
	return nil
}

func (s *loginRateLimiter) Reset(ctx context.Context, key string) error {
	if err := s.redisClient.Del(ctx, attemptKey(key), blockKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset attempts: %w", err)
	}
	return nil
}

func attemptKey(key string) string { return "login_attempts:" + key }
func blockKey(key string) string   { return "login_block:" + key }

// noopLoginRateLimiter never blocks. Used when rate limiting is disabled.
type noopLoginRateLimiter struct{}

func (*noopLoginRateLimiter) IsBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}
func (*noopLoginRateLimiter) RegisterFailure(ctx context.Context, key string) error { return nil }
func (*noopLoginRateLimiter) Reset(ctx context.Context, key string) error           { return nil }
