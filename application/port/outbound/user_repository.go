package outbound

import (
	"context"
	"time"

	"github.com/clubly/clubly/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateSubscriptionExpiry(ctx context.Context, userID string, expiresAt time.Time) error
	UpdateStatus(ctx context.Context, userID string, status entity.AccountStatus) error
}
