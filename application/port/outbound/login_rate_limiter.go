package outbound

import "context"

// LoginRateLimiter throttles repeated failed login attempts per key
// (email or client IP).
type LoginRateLimiter interface {
	IsBlocked(ctx context.Context, key string) (bool, error)
	RegisterFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
