package admin

import (
	"context"

	"github.com/clubly/clubly/application/port/inbound"
	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/application/usecase/atomic"
	"github.com/clubly/clubly/domain"
	"github.com/clubly/clubly/domain/entity"
	apperror "github.com/clubly/clubly/domain/error"
)

// AccountStatusUseCase flips a user account between active and
// suspended. The rollback closure restores the status captured before
// the write.
type AccountStatusUseCase struct {
	userRepo outbound.UserRepository
	executor *atomic.MutationExecutor
}

func NewAccountStatusUseCase(userRepo outbound.UserRepository, executor *atomic.MutationExecutor) *AccountStatusUseCase {
	return &AccountStatusUseCase{
		userRepo: userRepo,
		executor: executor,
	}
}

func (uc *AccountStatusUseCase) Execute(ctx context.Context, actor domain.ActorContext, req inbound.SetAccountStatusRequest) (*inbound.SetAccountStatusResponse, error) {
	newStatus := entity.AccountStatus(req.Status)
	if !entity.ValidAccountStatus(newStatus) {
		return nil, apperror.ErrInvalidStatus(req.Status)
	}

	target := domain.MutationTarget{Type: domain.TargetTypeUser, ID: req.UserID}

	user, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		if apperror.IsCode(err, apperror.ErrCodeUserNotFound) {
			if logErr := uc.executor.LogValidationRejection(ctx, actor, domain.ActionSetAccountStatus, target, req.Reason, apperror.ErrCodeUserNotFound); logErr != nil {
				return nil, logErr
			}
		}
		return nil, err
	}

	if user.Status == newStatus {
		if logErr := uc.executor.LogValidationRejection(ctx, actor, domain.ActionSetAccountStatus, target, req.Reason, apperror.ErrCodeInvalidStatus); logErr != nil {
			return nil, logErr
		}
		return nil, apperror.ErrInvalidStatus("account is already " + req.Status)
	}

	priorStatus := user.Status

	metadata := map[string]string{
		"previous_status": string(priorStatus),
		"new_status":      string(newStatus),
	}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	outcome, err := atomic.ExecuteAtomic(ctx, uc.executor,
		atomic.Request{
			Actor:    actor,
			Action:   domain.ActionSetAccountStatus,
			Target:   target,
			Reason:   req.Reason,
			Metadata: metadata,
		},
		func(ctx context.Context) (atomic.MutationResult[entity.AccountStatus], error) {
			if err := uc.userRepo.UpdateStatus(ctx, req.UserID, newStatus); err != nil {
				return atomic.MutationResult[entity.AccountStatus]{}, err
			}
			return atomic.MutationResult[entity.AccountStatus]{Value: newStatus}, nil
		},
		func(ctx context.Context) error {
			return uc.userRepo.UpdateStatus(ctx, req.UserID, priorStatus)
		},
	)
	if err != nil {
		return nil, err
	}

	return &inbound.SetAccountStatusResponse{
		Status:      string(outcome.Data),
		AuditRecord: outcome.AuditRecord,
	}, nil
}
