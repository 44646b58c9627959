package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/domain"
)

// AuditLogRepository implements the append-only audit store on
// PostgreSQL. Rows are inserted and read, never updated or deleted.
type AuditLogRepository struct{ db *sql.DB }

func NewAuditLogRepository(db *sql.DB) outbound.AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, record *domain.AuditRecord) (*domain.AuditRecord, error) {
	query := `
        INSERT INTO audit_log (id, actor_type, actor_id, action_type, target_type, target_id, reason, result, metadata, related_entity_id, error_code, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	var metadataJSON []byte
	if len(record.Metadata) > 0 {
		var err error
		metadataJSON, err = json.Marshal(record.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit metadata: %w", err)
		}
	}

	stored := *record
	stored.ID = uuid.NewString()

	var relatedEntityID, errorCode *string
	if stored.RelatedEntityID != "" {
		relatedEntityID = &stored.RelatedEntityID
	}
	if stored.ErrorCode != "" {
		errorCode = &stored.ErrorCode
	}

	_, err := r.db.ExecContext(ctx, query,
		stored.ID,
		string(stored.ActorType),
		stored.ActorID,
		string(stored.ActionType),
		string(stored.TargetType),
		stored.TargetID,
		stored.Reason,
		string(stored.Result),
		nullableJSON(metadataJSON),
		relatedEntityID,
		errorCode,
		stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append audit record: %w", err)
	}
	return &stored, nil
}

func (r *AuditLogRepository) FindByTarget(ctx context.Context, targetType domain.TargetType, targetID string, limit int) ([]*domain.AuditRecord, error) {
	query := `
        SELECT id, actor_type, actor_id, action_type, target_type, target_id, reason, result, metadata, related_entity_id, error_code, created_at
        FROM audit_log
        WHERE target_type = $1 AND target_id = $2
        ORDER BY created_at DESC
        LIMIT $3
    `
	rows, err := r.db.QueryContext(ctx, query, string(targetType), targetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()
	return scanAuditRecords(rows)
}

func (r *AuditLogRepository) FindByActor(ctx context.Context, actorID string, limit int) ([]*domain.AuditRecord, error) {
	query := `
        SELECT id, actor_type, actor_id, action_type, target_type, target_id, reason, result, metadata, related_entity_id, error_code, created_at
        FROM audit_log
        WHERE actor_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.db.QueryContext(ctx, query, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()
	return scanAuditRecords(rows)
}

func scanAuditRecords(rows *sql.Rows) ([]*domain.AuditRecord, error) {
	var records []*domain.AuditRecord
	for rows.Next() {
		var record domain.AuditRecord
		var metadataJSON []byte
		var relatedEntityID, errorCode sql.NullString
		if err := rows.Scan(
			&record.ID,
			&record.ActorType,
			&record.ActorID,
			&record.ActionType,
			&record.TargetType,
			&record.TargetID,
			&record.Reason,
			&record.Result,
			&metadataJSON,
			&relatedEntityID,
			&errorCode,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &record.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit metadata: %w", err)
			}
		}
		if relatedEntityID.Valid {
			record.RelatedEntityID = relatedEntityID.String
		}
		if errorCode.Valid {
			record.ErrorCode = errorCode.String
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit records: %w", err)
	}
	return records, nil
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
