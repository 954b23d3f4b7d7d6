package domain

import "time"

type ReturnCondition string

const (
	ReturnConditionGood        ReturnCondition = "GOOD"
	ReturnConditionMinorRepair ReturnCondition = "MINOR_REPAIR"
	ReturnConditionDamaged     ReturnCondition = "DAMAGED"
)

// IsValid guards the ledger: conditions feed the deposit refund percentage,
// so an unknown value must never be persisted.
func (c ReturnCondition) IsValid() bool {
	switch c {
	case ReturnConditionGood, ReturnConditionMinorRepair, ReturnConditionDamaged:
		return true
	}
	return false
}

// ReturnRecord is one append-only entry in the return ledger of a line item.
// Charges are computed from elapsed days since the contract start date, not
// since the previous partial return.
type ReturnRecord struct {
	ID           int64           `json:"id"`
	LineItemID   int64           `json:"line_item_id"`
	Quantity     int32           `json:"quantity"`
	ReturnDate   time.Time       `json:"return_date"`
	ElapsedDays  int32           `json:"elapsed_days"`
	ChargedCents int64           `json:"charged_cents"`
	Condition    ReturnCondition `json:"condition"`
	Notes        string          `json:"notes"`
	CreatedOn    time.Time       `json:"created_on"`
}
