package admin

import (
	"context"

	"github.com/clubly/clubly/application/port/inbound"
	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/application/usecase/atomic"
	"github.com/clubly/clubly/domain"
	apperror "github.com/clubly/clubly/domain/error"
)

const (
	defaultAuditTrailLimit = 50
	maxAuditTrailLimit     = 200
)

type AdminUseCaseImpl struct {
	grantCreditUseCase        *GrantCreditUseCase
	extendSubscriptionUseCase *ExtendSubscriptionUseCase
	accountStatusUseCase      *AccountStatusUseCase
	auditRepo                 outbound.AuditLogRepository
}

func NewAdminUseCase(
	userRepo outbound.UserRepository,
	creditRepo outbound.CreditRepository,
	auditRepo outbound.AuditLogRepository,
	executor *atomic.MutationExecutor,
) inbound.AdminUseCase {
	return &AdminUseCaseImpl{
		grantCreditUseCase:        NewGrantCreditUseCase(userRepo, creditRepo, executor),
		extendSubscriptionUseCase: NewExtendSubscriptionUseCase(userRepo, executor),
		accountStatusUseCase:      NewAccountStatusUseCase(userRepo, executor),
		auditRepo:                 auditRepo,
	}
}

func (uc *AdminUseCaseImpl) GrantCredit(ctx context.Context, actor domain.ActorContext, req inbound.GrantCreditRequest) (*inbound.GrantCreditResponse, error) {
	return uc.grantCreditUseCase.Execute(ctx, actor, req)
}

func (uc *AdminUseCaseImpl) ExtendSubscription(ctx context.Context, actor domain.ActorContext, req inbound.ExtendSubscriptionRequest) (*inbound.ExtendSubscriptionResponse, error) {
	return uc.extendSubscriptionUseCase.Execute(ctx, actor, req)
}

func (uc *AdminUseCaseImpl) SetAccountStatus(ctx context.Context, actor domain.ActorContext, req inbound.SetAccountStatusRequest) (*inbound.SetAccountStatusResponse, error) {
	return uc.accountStatusUseCase.Execute(ctx, actor, req)
}

func (uc *AdminUseCaseImpl) ListAuditTrail(ctx context.Context, req inbound.ListAuditTrailRequest) ([]*domain.AuditRecord, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultAuditTrailLimit
	}
	if limit > maxAuditTrailLimit {
		limit = maxAuditTrailLimit
	}

	if req.ActorID != "" {
		if req.TargetType != "" || req.TargetID != "" {
			return nil, apperror.ErrInvalidRequest("filter by actor_id or by target, not both")
		}
		return uc.auditRepo.FindByActor(ctx, req.ActorID, limit)
	}

	targetType := domain.TargetType(req.TargetType)
	switch targetType {
	case domain.TargetTypeUser, domain.TargetTypeClub, domain.TargetTypeEvent:
	default:
		return nil, apperror.ErrInvalidRequest("unknown target type: " + req.TargetType)
	}
	if req.TargetID == "" {
		return nil, apperror.ErrInvalidRequest("target_id is required")
	}

	return uc.auditRepo.FindByTarget(ctx, targetType, req.TargetID, limit)
}
