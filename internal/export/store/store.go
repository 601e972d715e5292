package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"furnipay/internal/export"
	"furnipay/internal/payment"
	"furnipay/internal/worker"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WorkerEntries(ctx context.Context, workerID int64, from, to time.Time) ([]export.Entry, error) {
	query := `
		SELECT a.created_at, o.id, o.name, a.stage, a.amount
		FROM payment_allocations a
		JOIN orders o ON o.id = a.order_id
		WHERE o.worker_id = $1 AND a.created_at >= $2 AND a.created_at < $3
		ORDER BY a.created_at ASC, a.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing worker entries: %w", err)
	}
	defer rows.Close()

	var entries []export.Entry

	for rows.Next() {
		var e export.Entry

		var stage string

		if err := rows.Scan(&e.Date, &e.OrderID, &e.OrderName, &stage, &e.Amount); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		e.Stage = payment.Stage(stage)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) WorkerName(ctx context.Context, workerID int64) (string, error) {
	var name string

	err := s.db.QueryRowContext(ctx, `SELECT full_name FROM workers WHERE id = $1`, workerID).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", worker.ErrNotFound
		}

		return "", fmt.Errorf("getting worker name: %w", err)
	}

	return name, nil
}
