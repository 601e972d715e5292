package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"hash/fnv"

	"furnipay/internal/order"
	"furnipay/internal/payment"
	"furnipay/internal/salary"
	"furnipay/internal/worker"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectPaymentColumns = `
	id, amount, date_received, created_at, allocated_automatically,
	order_id, worker_id, notes
`

func scanPayment(s scanner) (*payment.Payment, error) {
	var p payment.Payment

	var notes sql.NullString

	if err := s.Scan(
		&p.ID, &p.Amount, &p.DateReceived, &p.CreatedAt, &p.AllocatedAutomatically,
		&p.OrderID, &p.WorkerID, &notes,
	); err != nil {
		return nil, err
	}

	p.Notes = notes.String

	return &p, nil
}

func scanAllocation(s scanner) (*payment.Allocation, error) {
	var a payment.Allocation

	var stage string

	if err := s.Scan(&a.ID, &a.PaymentID, &a.OrderID, &stage, &a.Amount, &a.CreatedAt); err != nil {
		return nil, err
	}

	a.Stage = payment.Stage(stage)

	return &a, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (amount, date_received, allocated_automatically, order_id, worker_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Amount,
		p.DateReceived,
		p.AllocatedAutomatically,
		p.OrderID,
		p.WorkerID,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) GetPayment(ctx context.Context, id int64) (*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments WHERE id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments ORDER BY date_received DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func (s *Store) ListAllocations(ctx context.Context, paymentID int64) ([]*payment.Allocation, error) {
	return listAllocations(ctx, s.db, paymentID)
}

func (s *Store) Totals(ctx context.Context) (received, allocated int64, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE((SELECT SUM(amount) FROM payments), 0),
			COALESCE((SELECT SUM(amount) FROM payment_allocations), 0)
	`).Scan(&received, &allocated)
	if err != nil {
		return 0, 0, fmt.Errorf("summing totals: %w", err)
	}

	return received, allocated, nil
}

// reconcileLockKey serializes engine passes: two concurrent reconciliations
// interleaving their read-then-write cycles would corrupt the cached
// counters, so every pass queues on the same advisory lock.
func reconcileLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("furnipay.payment.reconcile"))

	return int64(h.Sum64())
}

type engineTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (payment.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning engine tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", reconcileLockKey()); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring reconcile lock: %w", err)
	}

	return &engineTx{tx: dbTx}, nil
}

func (t *engineTx) Commit() error   { return t.tx.Commit() }
func (t *engineTx) Rollback() error { return t.tx.Rollback() }

func (t *engineTx) ListPaymentsFIFO(ctx context.Context) ([]*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments ORDER BY date_received ASC, id ASC`

	rows, err := t.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payments fifo: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func (t *engineTx) AllocatedByPayment(ctx context.Context) (map[int64]int64, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT payment_id, SUM(amount) FROM payment_allocations GROUP BY payment_id`)
	if err != nil {
		return nil, fmt.Errorf("summing allocations: %w", err)
	}
	defer rows.Close()

	sums := make(map[int64]int64)

	for rows.Next() {
		var id, sum int64
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scanning allocation sum: %w", err)
		}

		sums[id] = sum
	}

	return sums, rows.Err()
}

const selectOrderColumns = `
	id, name, price, material_cost, product_types,
	date_received, date_design_deadline, date_to_work, date_advance_paid,
	date_installation, date_final_paid,
	advance_paid_amount, final_paid_amount,
	worker_id, fixed_bonus, advance_percent, final_percent,
	created_at, updated_at
`

func scanEngineOrder(s scanner) (*order.Order, error) {
	var o order.Order

	var productTypes sql.NullString

	if err := s.Scan(
		&o.ID, &o.Name, &o.Price, &o.MaterialCost, &productTypes,
		&o.DateReceived, &o.DateDesignDeadline, &o.DateToWork, &o.DateAdvancePaid,
		&o.DateInstallation, &o.DateFinalPaid,
		&o.AdvancePaid, &o.FinalPaid,
		&o.WorkerID, &o.FixedBonus, &o.AdvancePercent, &o.FinalPercent,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if productTypes.Valid && productTypes.String != "" {
		if err := json.Unmarshal([]byte(productTypes.String), &o.ProductTypes); err != nil {
			return nil, fmt.Errorf("decoding product types: %w", err)
		}
	}

	return &o, nil
}

func (t *engineTx) ListOrders(ctx context.Context) ([]*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders ORDER BY id ASC`

	rows, err := t.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order

	for rows.Next() {
		o, err := scanEngineOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (t *engineTx) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders WHERE id = $1`

	o, err := scanEngineOrder(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("getting order: %w", err)
	}

	return o, nil
}

func (t *engineTx) ListWorkers(ctx context.Context) (map[int64]*worker.Worker, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, salary_mode, salary_rate, advance_percent, final_percent
		FROM workers
	`)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()

	workers := make(map[int64]*worker.Worker)

	for rows.Next() {
		var w worker.Worker

		var mode string

		if err := rows.Scan(&w.ID, &mode, &w.SalaryRate, &w.AdvancePercent, &w.FinalPercent); err != nil {
			return nil, fmt.Errorf("scanning worker: %w", err)
		}

		w.SalaryMode = salary.Mode(mode)
		workers[w.ID] = &w
	}

	return workers, rows.Err()
}

func (t *engineTx) AllocationsForPayment(ctx context.Context, paymentID int64) ([]*payment.Allocation, error) {
	return listAllocations(ctx, t.tx, paymentID)
}

func (t *engineTx) InsertAllocation(ctx context.Context, a *payment.Allocation) error {
	query := `
		INSERT INTO payment_allocations (id, payment_id, order_id, stage, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := t.tx.ExecContext(ctx, query, a.ID, a.PaymentID, a.OrderID, string(a.Stage), a.Amount, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}

	return nil
}

func (t *engineTx) UpdateOrderPayout(ctx context.Context, o *order.Order) error {
	query := `
		UPDATE orders
		SET advance_paid_amount = $1, final_paid_amount = $2,
			date_advance_paid = $3, date_final_paid = $4, updated_at = NOW()
		WHERE id = $5
	`

	_, err := t.tx.ExecContext(ctx, query, o.AdvancePaid, o.FinalPaid, o.DateAdvancePaid, o.DateFinalPaid, o.ID)
	if err != nil {
		return fmt.Errorf("updating order payout: %w", err)
	}

	return nil
}

func (t *engineTx) DeleteAllocationsForPayment(ctx context.Context, paymentID int64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM payment_allocations WHERE payment_id = $1`, paymentID)
	if err != nil {
		return fmt.Errorf("deleting allocations: %w", err)
	}

	return nil
}

func (t *engineTx) DeletePayment(ctx context.Context, id int64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	return nil
}

func (t *engineTx) WipeLedger(ctx context.Context) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM payment_allocations`); err != nil {
		return fmt.Errorf("wiping allocations: %w", err)
	}

	_, err := t.tx.ExecContext(ctx, `
		UPDATE orders
		SET advance_paid_amount = 0, final_paid_amount = 0,
			date_advance_paid = NULL, date_final_paid = NULL, updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("resetting order counters: %w", err)
	}

	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listAllocations(ctx context.Context, q querier, paymentID int64) ([]*payment.Allocation, error) {
	query := `
		SELECT id, payment_id, order_id, stage, amount, created_at
		FROM payment_allocations
		WHERE payment_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()

	var allocs []*payment.Allocation

	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning allocation: %w", err)
		}

		allocs = append(allocs, a)
	}

	return allocs, rows.Err()
}

func collectPayments(rows *sql.Rows) ([]*payment.Payment, error) {
	var payments []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}
