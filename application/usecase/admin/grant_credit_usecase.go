package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/clubly/clubly/application/port/inbound"
	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/application/usecase/atomic"
	"github.com/clubly/clubly/domain"
	apperror "github.com/clubly/clubly/domain/error"
)

// GrantCreditUseCase creates one usage credit for a user. The insert
// and its audit record succeed or fail together: a failed audit write
// deletes the freshly created credit row.
type GrantCreditUseCase struct {
	userRepo   outbound.UserRepository
	creditRepo outbound.CreditRepository
	executor   *atomic.MutationExecutor
}

func NewGrantCreditUseCase(
	userRepo outbound.UserRepository,
	creditRepo outbound.CreditRepository,
	executor *atomic.MutationExecutor,
) *GrantCreditUseCase {
	return &GrantCreditUseCase{
		userRepo:   userRepo,
		creditRepo: creditRepo,
		executor:   executor,
	}
}

func (uc *GrantCreditUseCase) Execute(ctx context.Context, actor domain.ActorContext, req inbound.GrantCreditRequest) (*inbound.GrantCreditResponse, error) {
	code := domain.CreditCode(req.CreditCode)
	if !code.Valid() {
		return nil, apperror.ErrInvalidCreditCode(req.CreditCode)
	}

	target := domain.MutationTarget{Type: domain.TargetTypeUser, ID: req.UserID}

	if _, err := uc.userRepo.FindByID(ctx, req.UserID); err != nil {
		if apperror.IsCode(err, apperror.ErrCodeUserNotFound) {
			if logErr := uc.executor.LogValidationRejection(ctx, actor, domain.ActionGrantCredit, target, req.Reason, apperror.ErrCodeUserNotFound); logErr != nil {
				return nil, logErr
			}
		}
		return nil, err
	}

	credit := domain.NewCredit(uuid.NewString(), req.UserID, code, req.SourceTransactionID)

	metadata := map[string]string{
		"credit_code":           string(code),
		"source_transaction_id": req.SourceTransactionID,
	}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	outcome, err := atomic.ExecuteAtomic(ctx, uc.executor,
		atomic.Request{
			Actor:    actor,
			Action:   domain.ActionGrantCredit,
			Target:   target,
			Reason:   req.Reason,
			Metadata: metadata,
		},
		func(ctx context.Context) (atomic.MutationResult[*domain.Credit], error) {
			if err := uc.creditRepo.Create(ctx, credit); err != nil {
				return atomic.MutationResult[*domain.Credit]{}, err
			}
			return atomic.MutationResult[*domain.Credit]{Value: credit, RelatedEntityID: credit.ID}, nil
		},
		func(ctx context.Context) error {
			return uc.creditRepo.Delete(ctx, credit.ID)
		},
	)
	if err != nil {
		return nil, err
	}

	return &inbound.GrantCreditResponse{
		Credit:      outcome.Data,
		AuditRecord: outcome.AuditRecord,
	}, nil
}
