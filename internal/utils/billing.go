package utils

import (
	"time"

	"toolrent-core/internal/domain"
)

// ElapsedDays returns the whole days between the contract start date and a
// return date, rounded up, never less than 1. A same-day return is still one
// billable day.
func ElapsedDays(start, returned time.Time) int32 {
	diff := returned.Sub(start)
	if diff <= 0 {
		return 1
	}
	days := int32(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// ReturnCharge bills every returned unit as if it had been out since the
// contract start date.
func ReturnCharge(quantity int32, unitRateCents int64, elapsedDays int32) int64 {
	return int64(quantity) * unitRateCents * int64(elapsedDays)
}

func LineSubtotal(quantity int32, unitRateCents int64, rentalDays int32) int64 {
	return int64(quantity) * unitRateCents * int64(rentalDays)
}

// RefundPercentage grades the deposit refund from the worst condition seen
// across a contract's returns: any damaged item halves it, repairs cost a
// quarter, otherwise the full deposit comes back.
func RefundPercentage(conditions []domain.ReturnCondition) int32 {
	pct := int32(100)
	for _, c := range conditions {
		switch c {
		case domain.ReturnConditionDamaged:
			return 50
		case domain.ReturnConditionMinorRepair:
			pct = 75
		}
	}
	return pct
}

// RefundAmount floors to whole cents.
func RefundAmount(depositCents int64, percentage int32) int64 {
	return depositCents * int64(percentage) / 100
}
