package outbound

import (
	"context"

	"github.com/clubly/clubly/domain"
)

// AuditLogRepository is the append-only audit store. Append validates
// nothing beyond storage constraints and performs no retries; the
// executor decides what a failed append means.
type AuditLogRepository interface {
	// Append inserts one record and returns it with its assigned id.
	Append(ctx context.Context, record *domain.AuditRecord) (*domain.AuditRecord, error)

	// FindByTarget returns the most recent records for a target, newest first.
	FindByTarget(ctx context.Context, targetType domain.TargetType, targetID string, limit int) ([]*domain.AuditRecord, error)

	// FindByActor returns the most recent records written by an actor, newest first.
	FindByActor(ctx context.Context, actorID string, limit int) ([]*domain.AuditRecord, error)
}
