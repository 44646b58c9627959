package inbound

import (
	"context"

	"github.com/clubly/clubly/domain"
)

type GrantCreditRequest struct {
	UserID              string            `json:"user_id"`
	CreditCode          string            `json:"credit_code"`
	SourceTransactionID string            `json:"source_transaction_id"`
	Reason              string            `json:"reason"`
	Metadata            map[string]string `json:"metadata,omitempty"`
}

type GrantCreditResponse struct {
	Credit      *domain.Credit      `json:"credit"`
	AuditRecord *domain.AuditRecord `json:"audit_record"`
}

type ExtendSubscriptionRequest struct {
	UserID   string            `json:"user_id"`
	Days     int               `json:"days"`
	Reason   string            `json:"reason"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type ExtendSubscriptionResponse struct {
	ExpiresAt   string              `json:"subscription_expires_at"`
	AuditRecord *domain.AuditRecord `json:"audit_record"`
}

type SetAccountStatusRequest struct {
	UserID   string            `json:"user_id"`
	Status   string            `json:"status"`
	Reason   string            `json:"reason"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type SetAccountStatusResponse struct {
	Status      string              `json:"status"`
	AuditRecord *domain.AuditRecord `json:"audit_record"`
}

// ListAuditTrailRequest filters the audit trail either by target or by
// acting admin. Exactly one of the two filters must be set.
type ListAuditTrailRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	ActorID    string `json:"actor_id"`
	Limit      int    `json:"limit"`
}

// AdminUseCase groups the privileged call sites. Every write runs
// through the atomic mutation executor.
type AdminUseCase interface {
	GrantCredit(ctx context.Context, actor domain.ActorContext, req GrantCreditRequest) (*GrantCreditResponse, error)
	ExtendSubscription(ctx context.Context, actor domain.ActorContext, req ExtendSubscriptionRequest) (*ExtendSubscriptionResponse, error)
	SetAccountStatus(ctx context.Context, actor domain.ActorContext, req SetAccountStatusRequest) (*SetAccountStatusResponse, error)
	ListAuditTrail(ctx context.Context, req ListAuditTrailRequest) ([]*domain.AuditRecord, error)
}
