package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindWorker(ctx context.Context, payerName string) (int64, error) {
	// Longest pattern wins so "ФОП Марушак О." beats a bare "Марушак".
	query := `
		SELECT worker_id
		FROM payer_mappings
		WHERE $1 ILIKE '%' || payer_pattern || '%'
		ORDER BY LENGTH(payer_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var workerID int64

	err := s.db.QueryRowContext(ctx, query, payerName).Scan(&workerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}

		return 0, fmt.Errorf("finding payer match: %w", err)
	}

	return workerID, nil
}

func (s *Store) CreateMapping(ctx context.Context, payerPattern string, workerID int64) error {
	query := `
		INSERT INTO payer_mappings (payer_pattern, worker_id, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, payerPattern, workerID)
	if err != nil {
		return fmt.Errorf("creating payer mapping: %w", err)
	}

	return nil
}
