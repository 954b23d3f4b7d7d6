package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

type PaymentRecord struct {
	ID           int64         `json:"id"`
	ContractID   int64         `json:"contract_id"`
	AmountCents  int64         `json:"amount_cents"`
	PaymentDate  time.Time     `json:"payment_date"`
	Method       PaymentMethod `json:"method"`
	Reference    string        `json:"reference"`
	DocumentLink string        `json:"document_link,omitempty"`
	CreatedOn    time.Time     `json:"created_on"`
}

type PaymentStatus string

const (
	PaymentStatusNoPayments    PaymentStatus = "NO_PAYMENTS"
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentStatusFullyPaid     PaymentStatus = "FULLY_PAID"
)

// SettlementSummary reports how much of a contract has been billed and paid.
// AmountDueCents is the final amount once the contract is finalized, the
// estimated amount before that.
type SettlementSummary struct {
	ContractID      int64         `json:"contract_id"`
	AmountDueCents  int64         `json:"amount_due_cents"`
	AmountPaidCents int64         `json:"amount_paid_cents"`
	BalanceCents    int64         `json:"balance_cents"`
	Status          PaymentStatus `json:"status"`
}
