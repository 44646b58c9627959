package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/clubly/clubly/application/port/inbound"
	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/application/usecase/atomic"
	"github.com/clubly/clubly/domain"
	apperror "github.com/clubly/clubly/domain/error"
)

const maxExtensionDays = 365

// ExtendSubscriptionUseCase moves a user's subscription expiry forward.
// The rollback closure restores the expiry captured before the write.
type ExtendSubscriptionUseCase struct {
	userRepo outbound.UserRepository
	executor *atomic.MutationExecutor
}

func NewExtendSubscriptionUseCase(userRepo outbound.UserRepository, executor *atomic.MutationExecutor) *ExtendSubscriptionUseCase {
	return &ExtendSubscriptionUseCase{
		userRepo: userRepo,
		executor: executor,
	}
}

func (uc *ExtendSubscriptionUseCase) Execute(ctx context.Context, actor domain.ActorContext, req inbound.ExtendSubscriptionRequest) (*inbound.ExtendSubscriptionResponse, error) {
	if req.Days <= 0 || req.Days > maxExtensionDays {
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf("days must be between 1 and %d", maxExtensionDays))
	}

	target := domain.MutationTarget{Type: domain.TargetTypeUser, ID: req.UserID}

	user, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		if apperror.IsCode(err, apperror.ErrCodeUserNotFound) {
			if logErr := uc.executor.LogValidationRejection(ctx, actor, domain.ActionExtendSubscription, target, req.Reason, apperror.ErrCodeUserNotFound); logErr != nil {
				return nil, logErr
			}
		}
		return nil, err
	}

	priorExpiry := user.SubscriptionExpiresAt

	// An expired subscription extends from now, not from its old expiry.
	base := priorExpiry
	if now := time.Now().UTC(); base.Before(now) {
		base = now
	}
	newExpiry := base.AddDate(0, 0, req.Days)

	metadata := map[string]string{
		"days":            fmt.Sprintf("%d", req.Days),
		"previous_expiry": priorExpiry.Format(time.RFC3339),
		"new_expiry":      newExpiry.Format(time.RFC3339),
	}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	outcome, err := atomic.ExecuteAtomic(ctx, uc.executor,
		atomic.Request{
			Actor:    actor,
			Action:   domain.ActionExtendSubscription,
			Target:   target,
			Reason:   req.Reason,
			Metadata: metadata,
		},
		func(ctx context.Context) (atomic.MutationResult[time.Time], error) {
			if err := uc.userRepo.UpdateSubscriptionExpiry(ctx, req.UserID, newExpiry); err != nil {
				return atomic.MutationResult[time.Time]{}, err
			}
			return atomic.MutationResult[time.Time]{Value: newExpiry}, nil
		},
		func(ctx context.Context) error {
			return uc.userRepo.UpdateSubscriptionExpiry(ctx, req.UserID, priorExpiry)
		},
	)
	if err != nil {
		return nil, err
	}

	return &inbound.ExtendSubscriptionResponse{
		ExpiresAt:   outcome.Data.Format(time.RFC3339),
		AuditRecord: outcome.AuditRecord,
	}, nil
}
