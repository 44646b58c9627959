package event

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clubly/clubly/application/port/inbound"
	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/application/usecase/atomic"
	"github.com/clubly/clubly/domain"
	"github.com/clubly/clubly/domain/entity"
	apperror "github.com/clubly/clubly/domain/error"
)

// PublishEventUseCase persists a new event. Capacity above the base
// limit is gated by an event-upgrade credit: the credit consume and the
// event insert run through the credit ledger transaction executor so a
// failed insert restores the credit.
type PublishEventUseCase struct {
	eventRepo    outbound.EventRepository
	creditTx     *atomic.CreditTransactionExecutor
	baseCapacity int
}

func NewPublishEventUseCase(eventRepo outbound.EventRepository, creditTx *atomic.CreditTransactionExecutor, baseCapacity int) *PublishEventUseCase {
	return &PublishEventUseCase{
		eventRepo:    eventRepo,
		creditTx:     creditTx,
		baseCapacity: baseCapacity,
	}
}

func (uc *PublishEventUseCase) PublishEvent(ctx context.Context, ownerID string, req inbound.PublishEventRequest) (*entity.Event, error) {
	if err := uc.validate(req); err != nil {
		return nil, err
	}

	// The id is generated before the credit consume so the credit is
	// bound to a real entity id from the start.
	ev := entity.NewEvent(uuid.NewString(), ownerID, req.Title, req.Description, req.Capacity, req.StartsAt)

	if req.Capacity <= uc.baseCapacity {
		if err := uc.eventRepo.Create(ctx, ev); err != nil {
			return nil, err
		}
		return ev, nil
	}

	code, err := uc.upgradeCreditFor(req.Capacity)
	if err != nil {
		return nil, err
	}

	return atomic.ExecuteWithCreditTransaction(ctx, uc.creditTx, ownerID, code, ev.ID,
		func(ctx context.Context) (*entity.Event, error) {
			if err := uc.eventRepo.Create(ctx, ev); err != nil {
				return nil, err
			}
			return ev, nil
		},
	)
}

// CanUpgradeCapacity is a read-only pre-check so the UI can steer the
// owner to a purchase before they fill in the whole event form.
func (uc *PublishEventUseCase) CanUpgradeCapacity(ctx context.Context, ownerID string, capacity int) (bool, error) {
	if capacity <= uc.baseCapacity {
		return true, nil
	}
	code, err := uc.upgradeCreditFor(capacity)
	if err != nil {
		return false, err
	}
	return uc.creditTx.IsCreditAvailable(ctx, ownerID, code)
}

func (uc *PublishEventUseCase) validate(req inbound.PublishEventRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return apperror.ErrInvalidRequest("title is required")
	}
	if req.Capacity < 1 {
		return apperror.ErrInvalidRequest("capacity must be at least 1")
	}
	if req.StartsAt.Before(time.Now().UTC()) {
		return apperror.ErrInvalidRequest("event must start in the future")
	}
	return nil
}

func (uc *PublishEventUseCase) upgradeCreditFor(capacity int) (domain.CreditCode, error) {
	switch {
	case capacity <= 500:
		return domain.CreditEventUpgrade500, nil
	case capacity <= 1000:
		return domain.CreditEventUpgrade1000, nil
	default:
		return "", apperror.ErrCapacityTooLarge(capacity)
	}
}
