package atomic

import (
	"context"
	"strings"
	"time"

	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/domain"
	apperror "github.com/clubly/clubly/domain/error"
)

// MutationResult carries the value produced by a mutation closure plus
// the id of the entity it created, when there is one, for audit
// traceability.
type MutationResult[T any] struct {
	Value           T
	RelatedEntityID string
}

// Mutation performs the primary write. Rollback must undo exactly the
// effect of the paired Mutation; it runs only when the audit write
// fails after the mutation succeeded.
type (
	Mutation[T any] func(ctx context.Context) (MutationResult[T], error)
	Rollback        func(ctx context.Context) error
)

// Outcome is what a successful atomic mutation returns: the mutation's
// value together with the audit record that proves it.
type Outcome[T any] struct {
	Data        T
	AuditRecord *domain.AuditRecord
}

// Request describes the administrative action being executed.
type Request struct {
	Actor    domain.ActorContext
	Action   domain.ActionCode
	Target   domain.MutationTarget
	Reason   string
	Metadata map[string]string
}

// MutationExecutor sequences "mutate, audit, compensate on audit
// failure" so that a successful privileged write is observable only
// together with its audit record. The storage collaborator offers no
// multi-statement transaction, so the executor substitutes an explicit
// compensating rollback for a native one.
type MutationExecutor struct {
	auditLog outbound.AuditLogRepository
	logger   outbound.Logger
	alerts   outbound.AlertSink
}

func NewMutationExecutor(auditLog outbound.AuditLogRepository, logger outbound.Logger, alerts outbound.AlertSink) *MutationExecutor {
	return &MutationExecutor{
		auditLog: auditLog,
		logger:   logger,
		alerts:   alerts,
	}
}

// ExecuteAtomic runs mutation, writes the success audit record, and
// compensates with rollback when the audit write fails.
//
// Failure contract:
//   - mutation fails: the error is propagated, no audit record is
//     written and rollback never runs (no partial state exists yet).
//   - audit write fails: rollback runs; the audit error is returned
//     regardless of the rollback outcome.
//   - rollback also fails: the mutation is applied but unaudited and
//     uncompensated. A CRITICAL diagnostic carrying both errors is
//     emitted for manual reconciliation, and the audit error is still
//     the one returned. The rollback error never masks it.
func ExecuteAtomic[T any](ctx context.Context, ex *MutationExecutor, req Request, mutation Mutation[T], rollback Rollback) (*Outcome[T], error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	result, err := mutation(ctx)
	if err != nil {
		return nil, err
	}

	record := &domain.AuditRecord{
		ActorType:       req.Actor.ActorType,
		ActorID:         req.Actor.ActorID,
		ActionType:      req.Action,
		TargetType:      req.Target.Type,
		TargetID:        req.Target.ID,
		Reason:          req.Reason,
		Result:          domain.AuditResultSuccess,
		Metadata:        req.Metadata,
		RelatedEntityID: result.RelatedEntityID,
		CreatedAt:       time.Now().UTC(),
	}

	stored, auditErr := ex.auditLog.Append(ctx, record)
	if auditErr != nil {
		if rbErr := rollback(ctx); rbErr != nil {
			ex.escalate(ctx, "admin mutation applied but unaudited and uncompensated", map[string]interface{}{
				"action_type":    string(req.Action),
				"actor_id":       req.Actor.ActorID,
				"target_type":    string(req.Target.Type),
				"target_id":      req.Target.ID,
				"audit_error":    auditErr.Error(),
				"rollback_error": rbErr.Error(),
			})
		}
		return nil, auditErr
	}

	return &Outcome[T]{Data: result.Value, AuditRecord: stored}, nil
}

// LogValidationRejection writes a rejected audit record for a
// precondition failure detected before any mutation ran. There is no
// partial state on this path, so no compensation machinery is involved.
// The stored action type is the rejection code mapped from the success
// code of the action that was refused.
func (ex *MutationExecutor) LogValidationRejection(ctx context.Context, actor domain.ActorContext, action domain.ActionCode, target domain.MutationTarget, reason string, errorCode apperror.ErrorCode) error {
	rejection, ok := action.RejectionCode()
	if !ok {
		return apperror.ErrUnknownActionCode(string(action))
	}
	if strings.TrimSpace(reason) == "" {
		return apperror.ErrMissingReason()
	}

	record := &domain.AuditRecord{
		ActorType:  actor.ActorType,
		ActorID:    actor.ActorID,
		ActionType: rejection,
		TargetType: target.Type,
		TargetID:   target.ID,
		Reason:     reason,
		Result:     domain.AuditResultRejected,
		ErrorCode:  string(errorCode),
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := ex.auditLog.Append(ctx, record); err != nil {
		return err
	}
	return nil
}

func validateRequest(req Request) error {
	if !req.Action.Valid() {
		return apperror.ErrUnknownActionCode(string(req.Action))
	}
	if strings.TrimSpace(req.Reason) == "" {
		return apperror.ErrMissingReason()
	}
	return nil
}

func (ex *MutationExecutor) escalate(ctx context.Context, message string, fields map[string]interface{}) {
	fields["requires_manual_intervention"] = true
	ex.logger.Critical(ctx, message, fields)
	ex.alerts.Emit(ctx, outbound.Alert{
		Kind:    "unreconciled_admin_mutation",
		Message: message,
		Fields:  fields,
	})
}
