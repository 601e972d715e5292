package salary

import "time"

// Status is the derived payment state of an order.
type Status string

const (
	StatusNew           Status = "new"
	StatusInProgress    Status = "in_progress"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
)

// Inputs carries everything needed to derive an order's financial state.
// Amounts are kopecks; percent overrides are nil when not set on the order.
type Inputs struct {
	Price        int64
	MaterialCost int64
	FixedBonus   *int64

	AdvancePercent *float64
	FinalPercent   *float64

	AdvancePaid int64
	FinalPaid   int64

	DateToWork       *time.Time
	DateAdvancePaid  *time.Time
	DateInstallation *time.Time
	DateFinalPaid    *time.Time

	Worker *WorkerSettings
}

// Snapshot is the read model for one order's payroll state. It is computed
// from scratch on every read — the bonus is never cached because worker
// compensation settings may change after the order exists. A Snapshot is
// fully formed on construction and never mutated.
type Snapshot struct {
	Bonus int64

	AdvanceAmount    int64
	FinalAmount      int64
	AdvanceRemaining int64
	FinalRemaining   int64
	Remainder        int64

	// CurrentDebt counts only stages whose gating date is set and whose
	// remainder exceeds Tolerance.
	CurrentDebt int64

	// CriticalDebt flags a milestone reached without its payment: work
	// started with the advance unpaid, or installation done with the
	// final unpaid.
	CriticalDebt bool

	Status Status
}

// Compute derives the full financial snapshot for an order.
func Compute(in Inputs) Snapshot {
	bonus := Bonus(in.Price, in.MaterialCost, in.FixedBonus, in.Worker)

	var workerAdv, workerFin *float64
	if in.Worker != nil {
		workerAdv = in.Worker.AdvancePercent
		workerFin = in.Worker.FinalPercent
	}

	advanceAmount, finalAmount := StageSplit(bonus, in.AdvancePercent, in.FinalPercent, workerAdv, workerFin)

	advanceRemaining := max(0, advanceAmount-in.AdvancePaid)
	finalRemaining := max(0, finalAmount-in.FinalPaid)

	var debt int64
	if in.DateToWork != nil && advanceRemaining > Tolerance {
		debt += advanceRemaining
	}

	if in.DateInstallation != nil && finalRemaining > Tolerance {
		debt += finalRemaining
	}

	return Snapshot{
		Bonus:            bonus,
		AdvanceAmount:    advanceAmount,
		FinalAmount:      finalAmount,
		AdvanceRemaining: advanceRemaining,
		FinalRemaining:   finalRemaining,
		Remainder:        advanceRemaining + finalRemaining,
		CurrentDebt:      debt,
		CriticalDebt: (in.DateToWork != nil && in.DateAdvancePaid == nil) ||
			(in.DateInstallation != nil && in.DateFinalPaid == nil),
		Status: status(in),
	}
}

// status derives the exclusive payment status, evaluated in order:
// paid, partially_paid, in_progress, new.
func status(in Inputs) Status {
	switch {
	case in.DateFinalPaid != nil:
		return StatusPaid
	case in.DateAdvancePaid != nil || in.AdvancePaid > 0:
		return StatusPartiallyPaid
	case in.DateToWork != nil:
		return StatusInProgress
	default:
		return StatusNew
	}
}

// NetDebt nets an order's current debt against its unpaid deductions.
// A negative net means the worker owes the company: the debt is clamped to
// zero and the magnitude is reported as credit instead of being dropped.
func NetDebt(debt, unpaidDeductions int64) (net, credit int64) {
	net = debt - unpaidDeductions
	if net < 0 {
		return 0, -net
	}

	return net, 0
}
