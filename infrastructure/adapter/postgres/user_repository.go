package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/domain/entity"
	apperror "github.com/clubly/clubly/domain/error"
)

type UserRepository struct{ db *sql.DB }

func NewUserRepository(db *sql.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
        INSERT INTO users (id, email, password, name, role, status, subscription_expires_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Password,
		user.Name,
		user.Role,
		string(user.Status),
		user.SubscriptionExpiresAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := r.findOne(ctx, `WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, apperror.ErrUserNotFound(id)
	}
	return user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := r.findOne(ctx, `WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return nil, apperror.ErrUserNotFound(email)
	}
	return user, err
}

func (r *UserRepository) UpdateSubscriptionExpiry(ctx context.Context, userID string, expiresAt time.Time) error {
	query := `UPDATE users SET subscription_expires_at = $2, updated_at = $3 WHERE id = $1`
	return r.updateOne(ctx, query, userID, expiresAt, time.Now().UTC())
}

func (r *UserRepository) UpdateStatus(ctx context.Context, userID string, status entity.AccountStatus) error {
	query := `UPDATE users SET status = $2, updated_at = $3 WHERE id = $1`
	return r.updateOne(ctx, query, userID, string(status), time.Now().UTC())
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg interface{}) (*entity.User, error) {
	query := `
        SELECT id, email, password, name, role, status, subscription_expires_at, created_at, updated_at
        FROM users ` + where
	var user entity.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Name,
		&user.Role,
		&user.Status,
		&user.SubscriptionExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) updateOne(ctx context.Context, query string, userID string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, append([]interface{}{userID}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperror.ErrUserNotFound(userID)
	}
	return nil
}
