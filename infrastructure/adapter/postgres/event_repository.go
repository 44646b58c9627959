package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/domain/entity"
	apperror "github.com/clubly/clubly/domain/error"
)

type EventRepository struct{ db *sql.DB }

func NewEventRepository(db *sql.DB) outbound.EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
        INSERT INTO events (id, owner_id, title, description, capacity, starts_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.OwnerID,
		event.Title,
		event.Description,
		event.Capacity,
		event.StartsAt,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	query := `
        SELECT id, owner_id, title, description, capacity, starts_at, created_at, updated_at
        FROM events
        WHERE id = $1
    `
	var event entity.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.OwnerID,
		&event.Title,
		&event.Description,
		&event.Capacity,
		&event.StartsAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrEventNotFound(id)
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperror.ErrEventNotFound(id)
	}
	return nil
}
