package outbound

import (
	"context"

	"github.com/clubly/clubly/domain/entity"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id string) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
}
