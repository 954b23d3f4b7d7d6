package domain

import "time"

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusFinalized ContractStatus = "FINALIZED"
	ContractStatusOverdue   ContractStatus = "OVERDUE"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

type DeliveryMode string

const (
	DeliveryModePickup   DeliveryMode = "PICKUP"
	DeliveryModeDelivery DeliveryMode = "DELIVERY"
)

func (m DeliveryMode) IsValid() bool {
	switch m {
	case DeliveryModePickup, DeliveryModeDelivery:
		return true
	}
	return false
}

type Contract struct {
	ID                   int64          `json:"id"`
	CustomerID           int64          `json:"customer_id"`
	OperatorID           int64          `json:"operator_id"`
	StartDate            time.Time      `json:"start_date"`
	EstimatedEndDate     time.Time      `json:"estimated_end_date"`
	ActualEndDate        *time.Time     `json:"actual_end_date,omitempty"`
	DeliveryMode         DeliveryMode   `json:"delivery_mode"`
	Status               ContractStatus `json:"status"`
	EstimatedAmountCents int64          `json:"estimated_amount_cents"`
	FinalAmountCents     *int64         `json:"final_amount_cents,omitempty"`
	DepositAmountCents   int64          `json:"deposit_amount_cents"`
	Notes                string         `json:"notes"`
	CreatedOn            time.Time      `json:"created_on"`
	UpdatedOn            time.Time      `json:"updated_on"`

	// Populated when fetching contract details
	LineItems []LineItem `json:"line_items,omitempty"`
}

// LineItem is one (contract, tool) reservation entry. Name, SKU and the unit
// rate are snapshots taken at contract creation time; later catalog edits do
// not alter historical contracts. Quantity is never edited in place, returned
// units are tracked through the return records ledger.
type LineItem struct {
	ID            int64     `json:"id"`
	ContractID    int64     `json:"contract_id"`
	ToolID        int64     `json:"tool_id"`
	ToolName      string    `json:"tool_name"`
	ToolSKU       string    `json:"tool_sku"`
	Quantity      int32     `json:"quantity"`
	UnitRateCents int64     `json:"unit_rate_cents"`
	RentalDays    int32     `json:"rental_days"`
	SubtotalCents int64     `json:"subtotal_cents"`
	CreatedOn     time.Time `json:"created_on"`
}
