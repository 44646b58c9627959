package domain

import "time"

// CreditStatus is the credit state machine: available -> consumed, and
// consumed -> available only through a compensating revert.
type CreditStatus string

const (
	CreditStatusAvailable CreditStatus = "available"
	CreditStatusConsumed  CreditStatus = "consumed"
)

// CreditCode is the closed set of purchasable credit products.
type CreditCode string

const (
	CreditEventUpgrade500  CreditCode = "EVENT_UPGRADE_500"
	CreditEventUpgrade1000 CreditCode = "EVENT_UPGRADE_1000"
	CreditFeaturedListing  CreditCode = "FEATURED_LISTING"
)

var creditCodes = map[CreditCode]struct{}{
	CreditEventUpgrade500:  {},
	CreditEventUpgrade1000: {},
	CreditFeaturedListing:  {},
}

// Valid reports whether c is a registered credit product code.
func (c CreditCode) Valid() bool {
	_, ok := creditCodes[c]
	return ok
}

// Credit is one unit of pre-purchased or admin-granted entitlement.
// A credit gates exactly one dependent write and is consumed at most
// once under normal operation.
type Credit struct {
	ID                  string       `json:"id"`
	UserID              string       `json:"user_id"`
	CreditCode          CreditCode   `json:"credit_code"`
	Status              CreditStatus `json:"status"`
	SourceTransactionID string       `json:"source_transaction_id"`
	ConsumedEntityID    *string      `json:"consumed_entity_id,omitempty"`
	ConsumedAt          *time.Time   `json:"consumed_at,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
}

// NewCredit creates an available credit with the given provenance.
func NewCredit(id, userID string, code CreditCode, sourceTransactionID string) *Credit {
	return &Credit{
		ID:                  id,
		UserID:              userID,
		CreditCode:          code,
		Status:              CreditStatusAvailable,
		SourceTransactionID: sourceTransactionID,
		CreatedAt:           time.Now().UTC(),
	}
}
