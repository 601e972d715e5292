package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"furnipay/internal/order"
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

const selectOrderColumns = `
	id, name, price, material_cost, product_types,
	date_received, date_design_deadline, date_to_work, date_advance_paid,
	date_installation, date_final_paid,
	advance_paid_amount, final_paid_amount,
	worker_id, fixed_bonus, advance_percent, final_percent,
	created_at, updated_at
`

func scanOrder(s scanner) (*order.Order, error) {
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

func encodeProductTypes(types []string) (any, error) {
	if len(types) == 0 {
		return nil, nil
	}

	b, err := json.Marshal(types)
	if err != nil {
		return nil, fmt.Errorf("encoding product types: %w", err)
	}

	return string(b), nil
}

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	productTypes, err := encodeProductTypes(o.ProductTypes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (name, price, material_cost, product_types,
			date_received, date_design_deadline, date_to_work, date_installation,
			advance_paid_amount, final_paid_amount,
			worker_id, fixed_bonus, advance_percent, final_percent,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		o.Name,
		o.Price,
		o.MaterialCost,
		productTypes,
		o.DateReceived,
		o.DateDesignDeadline,
		o.DateToWork,
		o.DateInstallation,
		o.WorkerID,
		o.FixedBonus,
		o.AdvancePercent,
		o.FinalPercent,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	return nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("getting order: %w", err)
	}

	return o, nil
}

func (s *Store) ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	// id ASC is load-bearing: allocation fairness walks orders oldest first.
	query := `SELECT ` + selectOrderColumns + ` FROM orders`

	var args []any

	if filter.WorkerID != nil {
		query += " WHERE worker_id = $1"

		args = append(args, *filter.WorkerID)
	}

	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (s *Store) UpdateOrder(ctx context.Context, o *order.Order) error {
	productTypes, err := encodeProductTypes(o.ProductTypes)
	if err != nil {
		return err
	}

	query := `
		UPDATE orders
		SET name = $1, price = $2, material_cost = $3, product_types = $4,
			date_received = $5, date_design_deadline = $6, date_to_work = $7,
			date_advance_paid = $8, date_installation = $9, date_final_paid = $10,
			advance_paid_amount = $11, final_paid_amount = $12,
			worker_id = $13, fixed_bonus = $14, advance_percent = $15, final_percent = $16,
			updated_at = NOW()
		WHERE id = $17
	`

	_, err = s.db.ExecContext(ctx, query,
		o.Name,
		o.Price,
		o.MaterialCost,
		productTypes,
		o.DateReceived,
		o.DateDesignDeadline,
		o.DateToWork,
		o.DateAdvancePaid,
		o.DateInstallation,
		o.DateFinalPaid,
		o.AdvancePaid,
		o.FinalPaid,
		o.WorkerID,
		o.FixedBonus,
		o.AdvancePercent,
		o.FinalPercent,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return order.ErrNotFound
	}

	return nil
}
