package store

import (
	"context"
	"database/sql"
	"fmt"

	"furnipay/internal/deduction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectDeductionColumns = `
	id, order_id, amount, description, is_paid, paid_date, created_at
`

func scanDeduction(s scanner) (*deduction.Deduction, error) {
	var d deduction.Deduction

	var desc sql.NullString

	if err := s.Scan(
		&d.ID, &d.OrderID, &d.Amount, &desc, &d.IsPaid, &d.PaidDate, &d.CreatedAt,
	); err != nil {
		return nil, err
	}

	d.Description = desc.String

	return &d, nil
}

func (s *Store) CreateDeduction(ctx context.Context, d *deduction.Deduction) error {
	query := `
		INSERT INTO deductions (order_id, amount, description, is_paid, created_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		d.OrderID,
		d.Amount,
		d.Description,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating deduction: %w", err)
	}

	return nil
}

func (s *Store) GetDeduction(ctx context.Context, id int64) (*deduction.Deduction, error) {
	query := `SELECT ` + selectDeductionColumns + ` FROM deductions WHERE id = $1`

	d, err := scanDeduction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, deduction.ErrNotFound
		}

		return nil, fmt.Errorf("getting deduction: %w", err)
	}

	return d, nil
}

func (s *Store) ListDeductions(ctx context.Context, filter deduction.ListFilter) ([]*deduction.Deduction, error) {
	query := `SELECT ` + selectDeductionColumns + ` FROM deductions WHERE 1=1`

	var args []any

	if filter.OrderID != nil {
		args = append(args, *filter.OrderID)
		query += fmt.Sprintf(" AND order_id = $%d", len(args))
	}

	if filter.UnpaidOnly {
		query += " AND is_paid = FALSE"
	}

	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing deductions: %w", err)
	}
	defer rows.Close()

	var deductions []*deduction.Deduction

	for rows.Next() {
		d, err := scanDeduction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning deduction: %w", err)
		}

		deductions = append(deductions, d)
	}

	return deductions, rows.Err()
}

func (s *Store) UpdateDeduction(ctx context.Context, d *deduction.Deduction) error {
	query := `
		UPDATE deductions
		SET order_id = $1, amount = $2, description = $3, is_paid = $4, paid_date = $5
		WHERE id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		d.OrderID,
		d.Amount,
		d.Description,
		d.IsPaid,
		d.PaidDate,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating deduction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating deduction: %w", err)
	}

	if affected == 0 {
		return deduction.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteDeduction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM deductions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting deduction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting deduction: %w", err)
	}

	if affected == 0 {
		return deduction.ErrNotFound
	}

	return nil
}

func (s *Store) UnpaidTotal(ctx context.Context, orderID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM deductions
		WHERE order_id = $1 AND is_paid = FALSE
	`

	var total int64
	if err := s.db.QueryRowContext(ctx, query, orderID).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing unpaid deductions: %w", err)
	}

	return total, nil
}
