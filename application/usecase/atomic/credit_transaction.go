package atomic

import (
	"context"
	"time"

	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/domain"
)

// CreditTransactionExecutor sequences "consume credit, run dependent
// operation, revert on failure" for writes gated by a one-off usage
// credit. The consume step is a single conditional update guarded on
// status = available, so two concurrent attempts on the same credit
// race safely and exactly one wins.
type CreditTransactionExecutor struct {
	credits outbound.CreditRepository
	logger  outbound.Logger
	alerts  outbound.AlertSink
}

func NewCreditTransactionExecutor(credits outbound.CreditRepository, logger outbound.Logger, alerts outbound.AlertSink) *CreditTransactionExecutor {
	return &CreditTransactionExecutor{
		credits: credits,
		logger:  logger,
		alerts:  alerts,
	}
}

// ExecuteWithCreditTransaction consumes one available credit for
// (userID, code), binds it to boundEntityID and runs operation.
//
// Failure contract:
//   - no available credit: the distinguishable CREDIT_4001 error is
//     returned and operation never runs.
//   - operation succeeds: its result is returned and the credit stays
//     consumed; that is the intended terminal state.
//   - operation fails: the credit is reverted to available and the
//     operation's error is returned.
//   - the revert also fails: the credit is left consumed with nothing
//     bound to it. A CRITICAL diagnostic carrying both errors is
//     emitted for manual reconciliation, and the operation's error is
//     still the one returned.
func ExecuteWithCreditTransaction[T any](ctx context.Context, ex *CreditTransactionExecutor, userID string, code domain.CreditCode, boundEntityID string, operation func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	credit, err := ex.credits.ConsumeAvailable(ctx, userID, code, boundEntityID, time.Now().UTC())
	if err != nil {
		return zero, err
	}

	result, opErr := operation(ctx)
	if opErr == nil {
		return result, nil
	}

	if revertErr := ex.credits.Release(ctx, credit.ID); revertErr != nil {
		ex.escalate(ctx, "credit consumed but dependent operation failed and revert failed", map[string]interface{}{
			"credit_id":       credit.ID,
			"user_id":         userID,
			"credit_code":     string(code),
			"bound_entity_id": boundEntityID,
			"operation_error": opErr.Error(),
			"revert_error":    revertErr.Error(),
		})
	}
	return zero, opErr
}

// IsCreditAvailable is a read-only pre-check so callers can
// short-circuit before attempting a transaction that will predictably
// fail. It is an optimization, not a correctness dependency.
func (ex *CreditTransactionExecutor) IsCreditAvailable(ctx context.Context, userID string, code domain.CreditCode) (bool, error) {
	return ex.credits.HasAvailable(ctx, userID, code)
}

func (ex *CreditTransactionExecutor) escalate(ctx context.Context, message string, fields map[string]interface{}) {
	fields["requires_manual_intervention"] = true
	ex.logger.Critical(ctx, message, fields)
	ex.alerts.Emit(ctx, outbound.Alert{
		Kind:    "unreconciled_credit_consumption",
		Message: message,
		Fields:  fields,
	})
}
