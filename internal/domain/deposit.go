package domain

import "time"

type DepositPayment struct {
	ID          int64         `json:"id"`
	ContractID  int64         `json:"contract_id"`
	AmountCents int64         `json:"amount_cents"`
	PaymentDate time.Time     `json:"payment_date"`
	Method      PaymentMethod `json:"method"`
	Reference   string        `json:"reference"`
	CreatedOn   time.Time     `json:"created_on"`
}

type DepositRefund struct {
	ID          int64         `json:"id"`
	ContractID  int64         `json:"contract_id"`
	AmountCents int64         `json:"amount_cents"`
	RefundDate  time.Time     `json:"refund_date"`
	Method      PaymentMethod `json:"method"`
	Reference   string        `json:"reference"`
	CreatedOn   time.Time     `json:"created_on"`
}

// RefundSuggestion carries the condition-based refund recommendation.
// Percentage is 0 while any reserved quantity is still out.
type RefundSuggestion struct {
	ContractID     int64  `json:"contract_id"`
	DepositCents   int64  `json:"deposit_cents"`
	Percentage     int32  `json:"percentage"`
	SuggestedCents int64  `json:"suggested_cents"`
	Reason         string `json:"reason,omitempty"`
}
