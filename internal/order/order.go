package order

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("order not found")

// Order is one unit of work for the workshop. Amounts are kopecks.
//
// AdvancePaid and FinalPaid are cached counters that must always equal the
// sum of the allocation ledger entries for the matching stage; they only
// move through the allocation engine and its reversal path.
//
// AdvancePercent/FinalPercent hold the stage split frozen at creation time
// from the assigned worker's then-current defaults. The bonus amount
// itself is never stored: compensation settings stay live while the split
// stays frozen.
type Order struct {
	ID           int64
	Name         string
	Price        int64
	MaterialCost int64
	ProductTypes []string

	DateReceived       *time.Time
	DateDesignDeadline *time.Time
	DateToWork         *time.Time
	DateAdvancePaid    *time.Time
	DateInstallation   *time.Time
	DateFinalPaid      *time.Time

	AdvancePaid int64
	FinalPaid   int64

	WorkerID *int64

	FixedBonus     *int64
	AdvancePercent *float64
	FinalPercent   *float64

	CreatedAt time.Time
	UpdatedAt *time.Time
}
