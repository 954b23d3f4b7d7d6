package domain

import "time"

type Tool struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	SKU                 string    `json:"sku"`
	DailyRateCents      int64     `json:"daily_rate_cents"`
	DepositPerUnitCents int64     `json:"deposit_per_unit_cents"`
	MinimumDays         int32     `json:"minimum_days"`
	OnHand              int32     `json:"on_hand"`
	Active              bool      `json:"active"`
	CreatedOn           time.Time `json:"created_on"`
	UpdatedOn           time.Time `json:"updated_on"`
}
