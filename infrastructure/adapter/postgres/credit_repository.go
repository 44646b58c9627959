package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/domain"
	apperror "github.com/clubly/clubly/domain/error"
)

// CreditRepository persists usage credits on PostgreSQL. The storage
// offers no multi-statement transaction to the callers above it, so
// the status transitions are single conditional UPDATEs guarded on the
// status column; under concurrent consumption exactly one request wins
// the guard and the rest observe no available credit.
type CreditRepository struct{ db *sql.DB }

func NewCreditRepository(db *sql.DB) outbound.CreditRepository {
	return &CreditRepository{db: db}
}

func (r *CreditRepository) Create(ctx context.Context, credit *domain.Credit) error {
	query := `
        INSERT INTO credits (id, user_id, credit_code, status, source_transaction_id, consumed_entity_id, consumed_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.ExecContext(ctx, query,
		credit.ID,
		credit.UserID,
		string(credit.CreditCode),
		string(credit.Status),
		credit.SourceTransactionID,
		credit.ConsumedEntityID,
		credit.ConsumedAt,
		credit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create credit: %w", err)
	}
	return nil
}

func (r *CreditRepository) Delete(ctx context.Context, creditID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM credits WHERE id = $1`, creditID)
	if err != nil {
		return fmt.Errorf("failed to delete credit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("credit %s not found", creditID)
	}
	return nil
}

func (r *CreditRepository) FindByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	query := `
        SELECT id, user_id, credit_code, status, source_transaction_id, consumed_entity_id, consumed_at, created_at
        FROM credits
        WHERE id = $1
    `
	credit, err := scanCredit(r.db.QueryRowContext(ctx, query, creditID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("credit %s not found", creditID)
		}
		return nil, fmt.Errorf("failed to find credit: %w", err)
	}
	return credit, nil
}

// ConsumeAvailable transitions one available credit to consumed in a
// single guarded statement. The inner select picks the oldest available
// credit; SKIP LOCKED keeps two concurrent consumers from queueing on
// the same row, and the outer status guard makes the update a
// compare-and-swap.
func (r *CreditRepository) ConsumeAvailable(ctx context.Context, userID string, code domain.CreditCode, boundEntityID string, at time.Time) (*domain.Credit, error) {
	query := `
        UPDATE credits
        SET status = $1, consumed_entity_id = $2, consumed_at = $3
        WHERE id = (
            SELECT id FROM credits
            WHERE user_id = $4 AND credit_code = $5 AND status = $6
            ORDER BY created_at
            LIMIT 1
            FOR UPDATE SKIP LOCKED
        )
        AND status = $6
        RETURNING id, user_id, credit_code, status, source_transaction_id, consumed_entity_id, consumed_at, created_at
    `
	credit, err := scanCredit(r.db.QueryRowContext(ctx, query,
		string(domain.CreditStatusConsumed),
		boundEntityID,
		at,
		userID,
		string(code),
		string(domain.CreditStatusAvailable),
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrNoCreditAvailable(userID, string(code))
		}
		return nil, fmt.Errorf("failed to consume credit: %w", err)
	}
	return credit, nil
}

// Release reverts a consumed credit to available. The status guard
// ensures a credit that has since moved again is never clobbered.
func (r *CreditRepository) Release(ctx context.Context, creditID string) error {
	query := `
        UPDATE credits
        SET status = $1, consumed_entity_id = NULL, consumed_at = NULL
        WHERE id = $2 AND status = $3
    `
	result, err := r.db.ExecContext(ctx, query,
		string(domain.CreditStatusAvailable),
		creditID,
		string(domain.CreditStatusConsumed),
	)
	if err != nil {
		return fmt.Errorf("failed to release credit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read release result: %w", err)
	}
	if affected == 0 {
		return apperror.ErrCreditNotConsumed(creditID)
	}
	return nil
}

func (r *CreditRepository) HasAvailable(ctx context.Context, userID string, code domain.CreditCode) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM credits
            WHERE user_id = $1 AND credit_code = $2 AND status = $3
        )
    `
	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, string(code), string(domain.CreditStatusAvailable)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check credit availability: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCredit(row rowScanner) (*domain.Credit, error) {
	var credit domain.Credit
	var consumedEntityID sql.NullString
	var consumedAt sql.NullTime
	if err := row.Scan(
		&credit.ID,
		&credit.UserID,
		&credit.CreditCode,
		&credit.Status,
		&credit.SourceTransactionID,
		&consumedEntityID,
		&consumedAt,
		&credit.CreatedAt,
	); err != nil {
		return nil, err
	}
	if consumedEntityID.Valid {
		credit.ConsumedEntityID = &consumedEntityID.String
	}
	if consumedAt.Valid {
		credit.ConsumedAt = &consumedAt.Time
	}
	return &credit, nil
}
