package store

import (
	"context"
	"database/sql"
	"fmt"

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

const selectWorkerColumns = `
	id, full_name, is_active, card_number, email, phone_number,
	salary_mode, salary_rate, advance_percent, final_percent,
	created_at, updated_at
`

func scanWorker(s scanner) (*worker.Worker, error) {
	var w worker.Worker

	var card, email, phone sql.NullString

	var mode string

	if err := s.Scan(
		&w.ID, &w.FullName, &w.IsActive, &card, &email, &phone,
		&mode, &w.SalaryRate, &w.AdvancePercent, &w.FinalPercent,
		&w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return nil, err
	}

	w.CardNumber = card.String
	w.Email = email.String
	w.PhoneNumber = phone.String
	w.SalaryMode = salary.Mode(mode)

	return &w, nil
}

func (s *Store) CreateWorker(ctx context.Context, w *worker.Worker) error {
	query := `
		INSERT INTO workers (full_name, is_active, card_number, email, phone_number,
			salary_mode, salary_rate, advance_percent, final_percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		w.FullName,
		w.IsActive,
		w.CardNumber,
		w.Email,
		w.PhoneNumber,
		string(w.SalaryMode),
		w.SalaryRate,
		w.AdvancePercent,
		w.FinalPercent,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating worker: %w", err)
	}

	return nil
}

func (s *Store) GetWorker(ctx context.Context, id int64) (*worker.Worker, error) {
	query := `SELECT ` + selectWorkerColumns + ` FROM workers WHERE id = $1`

	w, err := scanWorker(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, worker.ErrNotFound
		}

		return nil, fmt.Errorf("getting worker: %w", err)
	}

	return w, nil
}

func (s *Store) ListWorkers(ctx context.Context) ([]*worker.Worker, error) {
	query := `SELECT ` + selectWorkerColumns + ` FROM workers ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()

	var workers []*worker.Worker

	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning worker: %w", err)
		}

		workers = append(workers, w)
	}

	return workers, rows.Err()
}

func (s *Store) UpdateWorker(ctx context.Context, w *worker.Worker) error {
	query := `
		UPDATE workers
		SET full_name = $1, is_active = $2, card_number = $3, email = $4, phone_number = $5,
			salary_mode = $6, salary_rate = $7, advance_percent = $8, final_percent = $9,
			updated_at = NOW()
		WHERE id = $10
	`

	_, err := s.db.ExecContext(ctx, query,
		w.FullName,
		w.IsActive,
		w.CardNumber,
		w.Email,
		w.PhoneNumber,
		string(w.SalaryMode),
		w.SalaryRate,
		w.AdvancePercent,
		w.FinalPercent,
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating worker: %w", err)
	}

	return nil
}
