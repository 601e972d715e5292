package payment_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furnipay/internal/order"
	"furnipay/internal/payment"
	"furnipay/internal/salary"
	"furnipay/internal/worker"
)

// fakeStore is an in-memory Repository + Tx good enough to exercise the
// engine's full read-modify-write cycle. Reads hand out copies and writes
// copy back, so a forgotten UpdateOrderPayout shows up as a failing test.
type fakeStore struct {
	payments    []*payment.Payment
	allocations []*payment.Allocation
	orders      []*order.Order
	workers     map[int64]*worker.Worker

	nextPaymentID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{workers: make(map[int64]*worker.Worker)}
}

func (f *fakeStore) addOrder(o *order.Order) *order.Order {
	f.orders = append(f.orders, o)
	return o
}

func (f *fakeStore) addPayment(p *payment.Payment) *payment.Payment {
	f.nextPaymentID++
	p.ID = f.nextPaymentID
	f.payments = append(f.payments, p)

	return p
}

func (f *fakeStore) CreatePayment(_ context.Context, p *payment.Payment) error {
	f.nextPaymentID++
	p.ID = f.nextPaymentID
	p.CreatedAt = time.Now()

	cp := *p
	f.payments = append(f.payments, &cp)

	return nil
}

func (f *fakeStore) GetPayment(_ context.Context, id int64) (*payment.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}

	return nil, payment.ErrNotFound
}

func (f *fakeStore) ListPayments(context.Context) ([]*payment.Payment, error) {
	return append([]*payment.Payment(nil), f.payments...), nil
}

func (f *fakeStore) ListAllocations(_ context.Context, paymentID int64) ([]*payment.Allocation, error) {
	var out []*payment.Allocation

	for _, a := range f.allocations {
		if a.PaymentID == paymentID {
			cp := *a
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (f *fakeStore) Totals(context.Context) (int64, int64, error) {
	var received, allocated int64

	for _, p := range f.payments {
		received += p.Amount
	}

	for _, a := range f.allocations {
		allocated += a.Amount
	}

	return received, allocated, nil
}

func (f *fakeStore) Begin(context.Context) (payment.Tx, error) {
	return &fakeTx{store: f}, nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Commit() error   { return nil }
func (t *fakeTx) Rollback() error { return nil }

func (t *fakeTx) ListPaymentsFIFO(context.Context) ([]*payment.Payment, error) {
	out := append([]*payment.Payment(nil), t.store.payments...)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateReceived.Equal(out[j].DateReceived) {
			return out[i].DateReceived.Before(out[j].DateReceived)
		}

		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (t *fakeTx) AllocatedByPayment(context.Context) (map[int64]int64, error) {
	sums := make(map[int64]int64)
	for _, a := range t.store.allocations {
		sums[a.PaymentID] += a.Amount
	}

	return sums, nil
}

func (t *fakeTx) ListOrders(context.Context) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(t.store.orders))
	for _, o := range t.store.orders {
		cp := *o
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (t *fakeTx) ListWorkers(context.Context) (map[int64]*worker.Worker, error) {
	return t.store.workers, nil
}

func (t *fakeTx) GetOrder(_ context.Context, id int64) (*order.Order, error) {
	for _, o := range t.store.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}

	return nil, order.ErrNotFound
}

func (t *fakeTx) AllocationsForPayment(ctx context.Context, paymentID int64) ([]*payment.Allocation, error) {
	return t.store.ListAllocations(ctx, paymentID)
}

func (t *fakeTx) InsertAllocation(_ context.Context, a *payment.Allocation) error {
	cp := *a
	t.store.allocations = append(t.store.allocations, &cp)

	return nil
}

func (t *fakeTx) UpdateOrderPayout(_ context.Context, o *order.Order) error {
	for _, stored := range t.store.orders {
		if stored.ID == o.ID {
			stored.AdvancePaid = o.AdvancePaid
			stored.FinalPaid = o.FinalPaid
			stored.DateAdvancePaid = o.DateAdvancePaid
			stored.DateFinalPaid = o.DateFinalPaid

			return nil
		}
	}

	return order.ErrNotFound
}

func (t *fakeTx) DeleteAllocationsForPayment(_ context.Context, paymentID int64) error {
	kept := t.store.allocations[:0]
	for _, a := range t.store.allocations {
		if a.PaymentID != paymentID {
			kept = append(kept, a)
		}
	}

	t.store.allocations = kept

	return nil
}

func (t *fakeTx) DeletePayment(_ context.Context, id int64) error {
	kept := t.store.payments[:0]
	for _, p := range t.store.payments {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	t.store.payments = kept

	return nil
}

func (t *fakeTx) WipeLedger(context.Context) error {
	t.store.allocations = nil

	for _, o := range t.store.orders {
		o.AdvancePaid = 0
		o.FinalPaid = 0
		o.DateAdvancePaid = nil
		o.DateFinalPaid = nil
	}

	return nil
}

// assertLedgerConsistent checks the two engine invariants: no payment is
// over-spent, and every order's cached counters equal its ledger sums.
func assertLedgerConsistent(t *testing.T, f *fakeStore) {
	t.Helper()

	perPayment := make(map[int64]int64)
	perStage := make(map[int64]map[payment.Stage]int64)

	for _, a := range f.allocations {
		perPayment[a.PaymentID] += a.Amount

		if perStage[a.OrderID] == nil {
			perStage[a.OrderID] = make(map[payment.Stage]int64)
		}

		perStage[a.OrderID][a.Stage] += a.Amount
	}

	for _, p := range f.payments {
		assert.LessOrEqual(t, perPayment[p.ID], p.Amount, "payment %d over-allocated", p.ID)
	}

	for _, o := range f.orders {
		assert.Equal(t, perStage[o.ID][payment.StageAdvance], o.AdvancePaid, "order %d advance counter", o.ID)
		assert.Equal(t, perStage[o.ID][payment.StageFinal], o.FinalPaid, "order %d final counter", o.ID)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// Orders with no worker fall back to the legacy 5% bonus split 50/50:
// price 100 000.00 means a 5 000.00 bonus, 2 500.00 per stage.
func legacyOrder(id int64, toWork, installed bool) *order.Order {
	o := &order.Order{ID: id, Name: "Шафа", Price: 100_000_00}
	if toWork {
		o.DateToWork = ptr(date(2024, 1, 10))
	}

	if installed {
		o.DateInstallation = ptr(date(2024, 2, 20))
	}

	return o
}

func TestReconcileAll_FIFOAcrossOrders(t *testing.T) {
	f := newFakeStore()
	f.addOrder(legacyOrder(1, true, false))
	f.addOrder(legacyOrder(2, true, false))

	svc := payment.NewService(f)

	// Enough to fully satisfy exactly one advance stage.
	res, err := svc.Record(context.Background(), payment.CreateParams{
		Amount:       2_500_00,
		DateReceived: date(2024, 1, 15),
	})
	require.NoError(t, err)

	require.Len(t, res.Allocations, 1)
	assert.Equal(t, int64(1), res.Allocations[0].OrderID)
	assert.Equal(t, payment.StageAdvance, res.Allocations[0].Stage)
	assert.Equal(t, int64(2_500_00), res.Allocations[0].Amount)
	assert.Zero(t, res.Remaining)

	assert.Equal(t, int64(2_500_00), f.orders[0].AdvancePaid)
	assert.NotNil(t, f.orders[0].DateAdvancePaid, "fully funded stage gets its completion date")
	assert.Zero(t, f.orders[1].AdvancePaid, "newer order must not be touched before the older one is full")

	assertLedgerConsistent(t, f)
}

func TestReconcileAll_Idempotent(t *testing.T) {
	f := newFakeStore()
	f.addOrder(legacyOrder(1, true, true))

	svc := payment.NewService(f)

	_, err := svc.Record(context.Background(), payment.CreateParams{
		Amount:       10_000_00,
		DateReceived: date(2024, 1, 15),
	})
	require.NoError(t, err)

	before := len(f.allocations)

	made, err := svc.ReconcileAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, made, "second pass must be a no-op")
	assert.Len(t, f.allocations, before)

	assertLedgerConsistent(t, f)
}

func TestReconcileAll_FIFOByReceivedDate(t *testing.T) {
	f := newFakeStore()
	f.addOrder(legacyOrder(1, true, false))

	// Inserted out of order: the payment received later has the lower id.
	newerP := f.addPayment(&payment.Payment{Amount: 2_000_00, DateReceived: date(2024, 1, 20)})
	olderP := f.addPayment(&payment.Payment{Amount: 2_000_00, DateReceived: date(2024, 1, 5)})

	svc := payment.NewService(f)
	ctx := context.Background()

	_, err := svc.ReconcileAll(ctx)
	require.NoError(t, err)

	// The advance stage needs 2 500.00. The older payment must be spent
	// fully; the newer one covers the remaining 500.00.
	older, _ := f.ListAllocations(ctx, olderP.ID)
	newer, _ := f.ListAllocations(ctx, newerP.ID)

	require.Len(t, older, 1)
	assert.Equal(t, int64(2_000_00), older[0].Amount)

	require.Len(t, newer, 1)
	assert.Equal(t, int64(500_00), newer[0].Amount)

	assertLedgerConsistent(t, f)
}

func TestReconcileAll_GatingDates(t *testing.T) {
	f := newFakeStore()
	o := f.addOrder(legacyOrder(1, false, false))

	svc := payment.NewService(f)
	ctx := context.Background()

	res, err := svc.Record(ctx, payment.CreateParams{
		Amount:       5_000_00,
		DateReceived: date(2024, 1, 15),
		OrderID:      ptr(int64(1)),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Allocations, "no stage is payable before its gating date")
	assert.Equal(t, int64(5_000_00), res.Remaining)

	// Handing the order to production unlocks the advance stage.
	o.DateToWork = ptr(date(2024, 1, 16))

	made, err := svc.ReconcileAll(ctx)
	require.NoError(t, err)
	require.Len(t, made, 1)
	assert.Equal(t, payment.StageAdvance, made[0].Stage)
	assert.Equal(t, int64(2_500_00), made[0].Amount)

	// The final stage stays gated until installation.
	assert.Zero(t, f.orders[0].FinalPaid)

	assertLedgerConsistent(t, f)
}

func TestReconcileAll_TargetedDeletedOrder(t *testing.T) {
	f := newFakeStore()
	f.addOrder(legacyOrder(1, true, false))

	svc := payment.NewService(f)

	res, err := svc.Record(context.Background(), payment.CreateParams{
		Amount:       1_000_00,
		DateReceived: date(2024, 1, 15),
		OrderID:      ptr(int64(42)),
	})
	require.NoError(t, err)

	// The money stays unallocated; it is not redirected to other orders.
	assert.Empty(t, res.Allocations)
	assert.Equal(t, int64(1_000_00), res.Remaining)
	assert.Zero(t, f.orders[0].AdvancePaid)
}

func TestReconcileAll_WorkerFilter(t *testing.T) {
	f := newFakeStore()
	f.workers[7] = &worker.Worker{
		ID:             7,
		SalaryMode:     salary.ModeSalesPercent,
		SalaryRate:     10,
		AdvancePercent: 50,
		FinalPercent:   50,
	}

	older := legacyOrder(1, true, false)
	f.addOrder(older)

	mine := legacyOrder(2, true, false)
	mine.WorkerID = ptr(int64(7))
	f.addOrder(mine)

	svc := payment.NewService(f)

	res, err := svc.Record(context.Background(), payment.CreateParams{
		Amount:       1_000_00,
		DateReceived: date(2024, 1, 15),
		WorkerID:     ptr(int64(7)),
	})
	require.NoError(t, err)

	require.Len(t, res.Allocations, 1)
	assert.Equal(t, int64(2), res.Allocations[0].OrderID, "worker money skips other workers' older orders")
	assert.Zero(t, older.AdvancePaid)

	assertLedgerConsistent(t, f)
}

func TestReconcileAll_SpillsAcrossStages(t *testing.T) {
	f := newFakeStore()
	f.addOrder(legacyOrder(1, true, true))

	svc := payment.NewService(f)

	res, err := svc.Record(context.Background(), payment.CreateParams{
		Amount:       4_000_00,
		DateReceived: date(2024, 1, 15),
	})
	require.NoError(t, err)

	require.Len(t, res.Allocations, 2)
	assert.Equal(t, payment.StageAdvance, res.Allocations[0].Stage)
	assert.Equal(t, int64(2_500_00), res.Allocations[0].Amount)
	assert.Equal(t, payment.StageFinal, res.Allocations[1].Stage)
	assert.Equal(t, int64(1_500_00), res.Allocations[1].Amount)

	assert.NotNil(t, f.orders[0].DateAdvancePaid)
	assert.Nil(t, f.orders[0].DateFinalPaid, "partially funded stage keeps no completion date")

	assertLedgerConsistent(t, f)
}

func TestDelete_TargetedReversal(t *testing.T) {
	f := newFakeStore()
	f.addOrder(legacyOrder(1, true, false))

	svc := payment.NewService(f)
	ctx := context.Background()

	// Two independent payments split the 2 500.00 advance between them.
	first, err := svc.Record(ctx, payment.CreateParams{Amount: 1_250_00, DateReceived: date(2024, 1, 10)})
	require.NoError(t, err)

	second, err := svc.Record(ctx, payment.CreateParams{Amount: 1_250_00, DateReceived: date(2024, 1, 11)})
	require.NoError(t, err)

	require.Equal(t, int64(2_500_00), f.orders[0].AdvancePaid)
	require.NotNil(t, f.orders[0].DateAdvancePaid)

	require.NoError(t, svc.Delete(ctx, first.Payment.ID))

	// Exactly the deleted payment's share is reverted.
	assert.Equal(t, int64(1_250_00), f.orders[0].AdvancePaid)
	assert.Nil(t, f.orders[0].DateAdvancePaid, "stage no longer fully paid, date must clear")

	_, err = svc.Get(ctx, first.Payment.ID)
	assert.ErrorIs(t, err, payment.ErrNotFound)

	// The surviving payment's allocation is untouched.
	left, err := svc.Allocations(ctx, second.Payment.ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, int64(1_250_00), left[0].Amount)

	assertLedgerConsistent(t, f)

	// Deliberately no reconciliation after a reversal: the shortfall
	// stays visible as debt even if idle money exists elsewhere.
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1_250_00), stats.TotalAllocated)
}

func TestDelete_NotFound(t *testing.T) {
	svc := payment.NewService(newFakeStore())

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, payment.ErrNotFound)
}

func TestRebuild_RestoresConsistency(t *testing.T) {
	f := newFakeStore()
	f.addOrder(legacyOrder(1, true, true))
	f.addOrder(legacyOrder(2, true, false))

	svc := payment.NewService(f)
	ctx := context.Background()

	_, err := svc.Record(ctx, payment.CreateParams{Amount: 6_000_00, DateReceived: date(2024, 1, 10)})
	require.NoError(t, err)

	// Simulate counter drift (the kind of corruption Rebuild exists for).
	f.orders[0].AdvancePaid = 99_99

	made, err := svc.Rebuild(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, made)

	assertLedgerConsistent(t, f)

	// Order 1 takes its full 5 000.00, order 2 gets the remaining 1 000.00.
	assert.Equal(t, int64(2_500_00), f.orders[0].AdvancePaid)
	assert.Equal(t, int64(2_500_00), f.orders[0].FinalPaid)
	assert.Equal(t, int64(1_000_00), f.orders[1].AdvancePaid)
}

func TestStats(t *testing.T) {
	f := newFakeStore()
	f.addOrder(legacyOrder(1, true, false))

	svc := payment.NewService(f)

	_, err := svc.Record(context.Background(), payment.CreateParams{
		Amount:       10_000_00,
		DateReceived: date(2024, 1, 15),
	})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10_000_00), stats.TotalReceived)
	assert.Equal(t, int64(2_500_00), stats.TotalAllocated)
	assert.Equal(t, int64(7_500_00), stats.Unallocated)
}
