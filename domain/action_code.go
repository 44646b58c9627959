package domain

// ActionCode is a member of the closed enumeration of admin action
// codes. Free-form action names are forbidden: every audit record
// carries either a success code from this set or its mapped rejection
// code, and the executor validates membership before any mutation runs.
type ActionCode string

const (
	ActionGrantCredit        ActionCode = "ADMIN_GRANT_CREDIT"
	ActionExtendSubscription ActionCode = "ADMIN_EXTEND_SUBSCRIPTION"
	ActionSetAccountStatus   ActionCode = "ADMIN_SET_ACCOUNT_STATUS"

	ActionGrantCreditRejected        ActionCode = "ADMIN_GRANT_CREDIT_REJECTED"
	ActionExtendSubscriptionRejected ActionCode = "ADMIN_EXTEND_SUBSCRIPTION_REJECTED"
	ActionSetAccountStatusRejected   ActionCode = "ADMIN_SET_ACCOUNT_STATUS_REJECTED"
)

var rejectionByAction = map[ActionCode]ActionCode{
	ActionGrantCredit:        ActionGrantCreditRejected,
	ActionExtendSubscription: ActionExtendSubscriptionRejected,
	ActionSetAccountStatus:   ActionSetAccountStatusRejected,
}

// Valid reports whether c is a registered success action code.
func (c ActionCode) Valid() bool {
	_, ok := rejectionByAction[c]
	return ok
}

// RejectionCode returns the rejection code paired with a success code.
func (c ActionCode) RejectionCode() (ActionCode, bool) {
	r, ok := rejectionByAction[c]
	return r, ok
}
