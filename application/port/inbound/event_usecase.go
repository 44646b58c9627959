package inbound

import (
	"context"
	"time"

	"github.com/clubly/clubly/domain/entity"
)

type PublishEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	StartsAt    time.Time `json:"starts_at"`
}

type EventUseCase interface {
	PublishEvent(ctx context.Context, ownerID string, req PublishEventRequest) (*entity.Event, error)
	CanUpgradeCapacity(ctx context.Context, ownerID string, capacity int) (bool, error)
}
