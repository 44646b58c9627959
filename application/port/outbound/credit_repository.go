package outbound

import (
	"context"
	"time"

	"github.com/clubly/clubly/domain"
)

// CreditRepository persists usage credits. Consume and Release are
// conditional updates guarded on the status column; correctness under
// concurrent requests depends on that guard, not on in-process locks.
type CreditRepository interface {
	Create(ctx context.Context, credit *domain.Credit) error

	// Delete removes a credit row. Used only to compensate a grant
	// whose audit write failed.
	Delete(ctx context.Context, creditID string) error

	FindByID(ctx context.Context, creditID string) (*domain.Credit, error)

	// ConsumeAvailable atomically picks one available credit for
	// (userID, code), marks it consumed and binds it to boundEntityID.
	// Returns an AppError with code CREDIT_4001 when no available
	// credit exists; two concurrent calls against a single credit must
	// resolve to exactly one winner.
	ConsumeAvailable(ctx context.Context, userID string, code domain.CreditCode, boundEntityID string, at time.Time) (*domain.Credit, error)

	// Release reverts a consumed credit back to available, clearing the
	// bound entity. Guarded on status = consumed so a credit that has
	// since moved again is never clobbered.
	Release(ctx context.Context, creditID string) error

	HasAvailable(ctx context.Context, userID string, code domain.CreditCode) (bool, error)
}
