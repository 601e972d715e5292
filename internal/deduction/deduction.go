package deduction

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("deduction not found")

// Deduction is a penalty charged against an order's payout. Paid or not,
// it never reduces the cached stage-paid counters on the order; it only
// nets against the computed debt in the read model.
type Deduction struct {
	ID          int64
	OrderID     int64
	Amount      int64
	Description string

	IsPaid   bool
	PaidDate *time.Time

	CreatedAt time.Time
}
