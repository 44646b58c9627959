package domain

import "time"

// AuditResult is the outcome recorded on an audit entry.
type AuditResult string

const (
	AuditResultSuccess  AuditResult = "success"
	AuditResultRejected AuditResult = "rejected"
)

// AuditRecord is an immutable, append-only proof that an administrative
// action happened (or was rejected). Records are never updated or
// deleted; corrections are new records.
type AuditRecord struct {
	ID              string            `json:"id"`
	ActorType       ActorType         `json:"actor_type"`
	ActorID         string            `json:"actor_id"`
	ActionType      ActionCode        `json:"action_type"`
	TargetType      TargetType        `json:"target_type"`
	TargetID        string            `json:"target_id"`
	Reason          string            `json:"reason"`
	Result          AuditResult       `json:"result"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	RelatedEntityID string            `json:"related_entity_id,omitempty"`
	ErrorCode       string            `json:"error_code,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}
