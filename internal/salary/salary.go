package salary

import "math"

// Tolerance is the amount, in kopecks, below which a remainder is treated
// as settled. It corresponds to the 0.01 UAH tolerance the payroll rules
// are written against; every remainder comparison in the engine must go
// through it rather than exact equality.
const Tolerance int64 = 1

// Mode selects how a worker's bonus is derived from an order.
type Mode string

const (
	// ModeSalesPercent pays a percentage of the order's sale price.
	ModeSalesPercent Mode = "sales_percent"
	// ModeMaterialsPercent pays a percentage of the order's material cost.
	ModeMaterialsPercent Mode = "materials_percent"
	// ModeFixedAmount pays a flat amount per order; Rate holds kopecks, not a percentage.
	ModeFixedAmount Mode = "fixed_amount"
)

// legacyFallbackPercent applies when an order has no worker at all.
// Orders predating worker accounts were paid 5% of the sale price and
// must keep computing that way.
const legacyFallbackPercent = 5.0

// WorkerSettings is the compensation configuration of a worker, as it
// stands right now. The bonus is always derived from live settings; only
// the stage split is frozen onto orders at creation time.
type WorkerSettings struct {
	Mode           Mode
	Rate           float64
	AdvancePercent *float64
	FinalPercent   *float64
}

// Bonus computes the total bonus owed to a worker for one order.
//
// Priority:
//  1. fixedBonus (manager override) wins over everything.
//  2. The worker's mode and rate.
//  3. No worker: legacy 5% of sale price.
//
// Total function; unknown modes fall through to the legacy fallback.
func Bonus(price, materialCost int64, fixedBonus *int64, w *WorkerSettings) int64 {
	if fixedBonus != nil {
		return *fixedBonus
	}

	if w != nil {
		switch w.Mode {
		case ModeFixedAmount:
			return int64(math.Round(w.Rate))
		case ModeMaterialsPercent:
			return percentOf(materialCost, w.Rate)
		case ModeSalesPercent:
			return percentOf(price, w.Rate)
		}
	}

	return percentOf(price, legacyFallbackPercent)
}

// StageSplit divides a bonus between the advance stage (paid once the
// order goes to production) and the final stage (paid after installation).
//
// Priority:
//  1. Per-order override; a missing final percent defaults to 100 − advance.
//  2. Worker defaults; a missing final percent defaults to 50.
//  3. 50/50.
//
// The two percentages are not required to sum to 100. Splits like 100/0 or
// 70/50 are legitimate configurations and must not be normalized.
func StageSplit(bonus int64, orderAdv, orderFin, workerAdv, workerFin *float64) (advance, final int64) {
	var advPct, finPct float64

	switch {
	case orderAdv != nil:
		advPct = *orderAdv
		if orderFin != nil {
			finPct = *orderFin
		} else {
			finPct = 100 - advPct
		}
	case workerAdv != nil:
		advPct = *workerAdv
		if workerFin != nil {
			finPct = *workerFin
		} else {
			finPct = 50
		}
	default:
		advPct = 50
		finPct = 50
	}

	return percentOf(bonus, advPct), percentOf(bonus, finPct)
}

// percentOf applies a percentage to an amount in kopecks, rounding to the
// nearest kopeck.
func percentOf(amount int64, pct float64) int64 {
	return int64(math.Round(float64(amount) * pct / 100))
}
