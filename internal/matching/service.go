package matching

import (
	"context"
)

type Repository interface {
	FindWorker(ctx context.Context, payerName string) (int64, error)
	CreateMapping(ctx context.Context, payerPattern string, workerID int64) error
}

// Service maps free-form payer names from bank statements to workers.
// Mappings are learned from confirmed imports, so suggestions improve
// over time without manual table maintenance.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the worker most likely behind the given payer name.
// Returns 0 when no pattern matches.
func (s *Service) Suggest(ctx context.Context, payerName string) (int64, error) {
	return s.repo.FindWorker(ctx, payerName)
}

// Learn remembers a confirmed payer-pattern to worker pairing.
func (s *Service) Learn(ctx context.Context, payerPattern string, workerID int64) error {
	return s.repo.CreateMapping(ctx, payerPattern, workerID)
}
