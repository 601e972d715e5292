package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"furnipay/internal/order"
	"furnipay/internal/salary"
	"furnipay/internal/worker"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id int64) (*Payment, error)
	ListPayments(ctx context.Context) ([]*Payment, error)
	ListAllocations(ctx context.Context, paymentID int64) ([]*Allocation, error)
	Totals(ctx context.Context) (received, allocated int64, err error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is one serialized engine pass against the ledger and the order table.
// Implementations must guarantee that two passes never interleave (the
// Postgres store takes an advisory lock) and that either every mutation of
// a pass commits or none does.
type Tx interface {
	// ListPaymentsFIFO returns payments ordered by (date_received ASC, id ASC):
	// strict FIFO, oldest money first.
	ListPaymentsFIFO(ctx context.Context) ([]*Payment, error)
	// AllocatedByPayment returns the ledger sum per payment id.
	AllocatedByPayment(ctx context.Context) (map[int64]int64, error)
	// ListOrders returns all orders by id ASC, oldest first.
	ListOrders(ctx context.Context) ([]*order.Order, error)
	ListWorkers(ctx context.Context) (map[int64]*worker.Worker, error)

	GetOrder(ctx context.Context, id int64) (*order.Order, error)
	AllocationsForPayment(ctx context.Context, paymentID int64) ([]*Allocation, error)

	InsertAllocation(ctx context.Context, a *Allocation) error
	UpdateOrderPayout(ctx context.Context, o *order.Order) error
	DeleteAllocationsForPayment(ctx context.Context, paymentID int64) error
	DeletePayment(ctx context.Context, id int64) error

	// WipeLedger deletes every allocation, zeroes all cached paid counters
	// and clears stage completion dates. Only the legacy Rebuild path uses it.
	WipeLedger(ctx context.Context) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	Amount       int64
	DateReceived time.Time
	OrderID      *int64
	WorkerID     *int64
	Notes        string
}

type RecordResult struct {
	Payment *Payment
	// Allocations made by the reconciliation pass this recording triggered.
	// The pass distributes every idle remainder, so entries may belong to
	// older payments as well.
	Allocations []*Allocation
	// Remaining is this payment's still-unallocated amount.
	Remaining int64
}

// Record stores a payment and runs a full reconciliation pass.
func (s *Service) Record(ctx context.Context, params CreateParams) (*RecordResult, error) {
	p := &Payment{
		Amount:                 params.Amount,
		DateReceived:           params.DateReceived,
		AllocatedAutomatically: params.OrderID == nil,
		OrderID:                params.OrderID,
		WorkerID:               params.WorkerID,
		Notes:                  params.Notes,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	made, err := s.ReconcileAll(ctx)
	if err != nil {
		return nil, err
	}

	own, err := s.repo.ListAllocations(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	var used int64
	for _, a := range own {
		used += a.Amount
	}

	return &RecordResult{
		Payment:     p,
		Allocations: made,
		Remaining:   p.Amount - used,
	}, nil
}

// ReconcileAll is the idempotent, from-scratch distribution pass. It walks
// every payment in FIFO order, computes the unspent remainder from the
// ledger, and pours it into eligible orders. Running it twice in a row
// produces zero new allocations on the second run.
func (s *Service) ReconcileAll(ctx context.Context) ([]*Allocation, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reconcile: %w", err)
	}
	defer tx.Rollback()

	made, err := s.reconcile(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reconcile: %w", err)
	}

	return made, nil
}

func (s *Service) reconcile(ctx context.Context, tx Tx) ([]*Allocation, error) {
	payments, err := tx.ListPaymentsFIFO(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	allocated, err := tx.AllocatedByPayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum allocations: %w", err)
	}

	orders, err := tx.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	workers, err := tx.ListWorkers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	ordersByID := make(map[int64]*order.Order, len(orders))
	for _, o := range orders {
		ordersByID[o.ID] = o
	}

	today := s.now()
	touched := make(map[int64]struct{})

	var made []*Allocation

	for _, p := range payments {
		remaining := p.Amount - allocated[p.ID]
		if remaining < salary.Tolerance {
			continue
		}

		for _, o := range targetOrders(p, orders, ordersByID) {
			if remaining < salary.Tolerance {
				break
			}

			pours, left := allocateOrder(o, orderWorker(o, workers), p.ID, remaining, today)
			remaining = left

			for _, a := range pours {
				if err := tx.InsertAllocation(ctx, a); err != nil {
					return nil, fmt.Errorf("insert allocation: %w", err)
				}

				made = append(made, a)
				touched[o.ID] = struct{}{}
			}
		}
	}

	// Persist counters once per touched order, in the stable walk order.
	for _, o := range orders {
		if _, ok := touched[o.ID]; !ok {
			continue
		}

		if err := tx.UpdateOrderPayout(ctx, o); err != nil {
			return nil, fmt.Errorf("update order %d: %w", o.ID, err)
		}
	}

	return made, nil
}

// targetOrders resolves the order set a payment may fund. A payment whose
// explicit target order was deleted funds nothing: the money stays
// unallocated rather than being silently redirected.
func targetOrders(p *Payment, all []*order.Order, byID map[int64]*order.Order) []*order.Order {
	switch {
	case p.OrderID != nil:
		o, ok := byID[*p.OrderID]
		if !ok {
			return nil
		}

		return []*order.Order{o}
	case p.WorkerID != nil:
		var targets []*order.Order

		for _, o := range all {
			if o.WorkerID != nil && *o.WorkerID == *p.WorkerID {
				targets = append(targets, o)
			}
		}

		return targets
	default:
		return all
	}
}

// allocateOrder pours up to available kopecks into one order, advance
// stage first, then final. A stage only accepts money once its gating date
// is set. Counters and completion dates are mutated on o; the caller is
// responsible for persisting it.
func allocateOrder(o *order.Order, w *worker.Worker, paymentID, available int64, today time.Time) ([]*Allocation, int64) {
	advanceAmount, finalAmount := stageAmounts(o, w)
	remaining := available

	var made []*Allocation

	if o.DateToWork != nil {
		pour := min(remaining, advanceAmount-o.AdvancePaid)
		if pour > 0 {
			o.AdvancePaid += pour
			remaining -= pour

			if o.AdvancePaid+salary.Tolerance >= advanceAmount && o.DateAdvancePaid == nil {
				t := today
				o.DateAdvancePaid = &t
			}

			made = append(made, newAllocation(paymentID, o.ID, StageAdvance, pour, today))
		}
	}

	if o.DateInstallation != nil {
		pour := min(remaining, finalAmount-o.FinalPaid)
		if pour > 0 {
			o.FinalPaid += pour
			remaining -= pour

			if o.FinalPaid+salary.Tolerance >= finalAmount && o.DateFinalPaid == nil {
				t := today
				o.DateFinalPaid = &t
			}

			made = append(made, newAllocation(paymentID, o.ID, StageFinal, pour, today))
		}
	}

	return made, remaining
}

// stageAmounts recomputes the order's stage amounts live: frozen per-order
// split, current worker settings. The bonus is deliberately never cached.
func stageAmounts(o *order.Order, w *worker.Worker) (advance, final int64) {
	settings := w.Settings()
	bonus := salary.Bonus(o.Price, o.MaterialCost, o.FixedBonus, settings)

	var workerAdv, workerFin *float64
	if settings != nil {
		workerAdv = settings.AdvancePercent
		workerFin = settings.FinalPercent
	}

	return salary.StageSplit(bonus, o.AdvancePercent, o.FinalPercent, workerAdv, workerFin)
}

func orderWorker(o *order.Order, workers map[int64]*worker.Worker) *worker.Worker {
	if o.WorkerID == nil {
		return nil
	}

	return workers[*o.WorkerID]
}

func newAllocation(paymentID, orderID int64, stage Stage, amount int64, createdAt time.Time) *Allocation {
	return &Allocation{
		ID:        uuid.New(),
		PaymentID: paymentID,
		OrderID:   orderID,
		Stage:     stage,
		Amount:    amount,
		CreatedAt: createdAt,
	}
}

// Delete reverses exactly the effects of one payment and removes it.
// Each of the payment's ledger entries is subtracted from the matching
// cached counter (floored at zero); if the counter then falls short of the
// live stage amount by more than the tolerance, the stage completion date
// is cleared. No reconciliation follows: a shortfall created here is left
// as visible debt instead of spuriously re-allocating idle money.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetPayment(ctx, id); err != nil {
		return err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reversal: %w", err)
	}
	defer tx.Rollback()

	allocs, err := tx.AllocationsForPayment(ctx, id)
	if err != nil {
		return fmt.Errorf("list allocations: %w", err)
	}

	workers, err := tx.ListWorkers(ctx)
	if err != nil {
		return fmt.Errorf("list workers: %w", err)
	}

	loaded := make(map[int64]*order.Order)

	for _, a := range allocs {
		o, ok := loaded[a.OrderID]
		if !ok {
			o, err = tx.GetOrder(ctx, a.OrderID)
			if err != nil {
				if errors.Is(err, order.ErrNotFound) {
					// The funded order is gone; nothing to revert on it.
					continue
				}

				return fmt.Errorf("get order %d: %w", a.OrderID, err)
			}

			loaded[a.OrderID] = o
		}

		advanceAmount, finalAmount := stageAmounts(o, orderWorker(o, workers))

		switch a.Stage {
		case StageAdvance:
			o.AdvancePaid = max(0, o.AdvancePaid-a.Amount)
			if o.AdvancePaid < advanceAmount-salary.Tolerance {
				o.DateAdvancePaid = nil
			}
		case StageFinal:
			o.FinalPaid = max(0, o.FinalPaid-a.Amount)
			if o.FinalPaid < finalAmount-salary.Tolerance {
				o.DateFinalPaid = nil
			}
		}
	}

	for _, o := range loaded {
		if err := tx.UpdateOrderPayout(ctx, o); err != nil {
			return fmt.Errorf("update order %d: %w", o.ID, err)
		}
	}

	if err := tx.DeleteAllocationsForPayment(ctx, id); err != nil {
		return fmt.Errorf("delete allocations: %w", err)
	}

	if err := tx.DeletePayment(ctx, id); err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reversal: %w", err)
	}

	return nil
}

// Rebuild is the legacy global reset: wipe the whole ledger, zero every
// cached counter, clear completion dates and redistribute everything from
// scratch in a single transaction. It is an emergency repair tool, not the
// delete path — if configuration changed since the original allocations,
// the result will differ from targeted reversal.
func (s *Service) Rebuild(ctx context.Context) ([]*Allocation, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if err := tx.WipeLedger(ctx); err != nil {
		return nil, fmt.Errorf("wipe ledger: %w", err)
	}

	made, err := s.reconcile(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rebuild: %w", err)
	}

	return made, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Payment, error) {
	return s.repo.ListPayments(ctx)
}

func (s *Service) Allocations(ctx context.Context, paymentID int64) ([]*Allocation, error) {
	return s.repo.ListAllocations(ctx, paymentID)
}

type Stats struct {
	TotalReceived  int64
	TotalAllocated int64
	Unallocated    int64
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	received, allocated, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalReceived:  received,
		TotalAllocated: allocated,
		Unallocated:    received - allocated,
	}, nil
}
