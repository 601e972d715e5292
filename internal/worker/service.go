package worker

import (
	"context"

	"furnipay/internal/salary"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=worker
type Repository interface {
	CreateWorker(ctx context.Context, w *Worker) error
	GetWorker(ctx context.Context, id int64) (*Worker, error)
	ListWorkers(ctx context.Context) ([]*Worker, error)
	UpdateWorker(ctx context.Context, w *Worker) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	FullName    string
	CardNumber  string
	Email       string
	PhoneNumber string

	SalaryMode salary.Mode
	SalaryRate float64

	AdvancePercent float64
	// FinalPercent may be omitted; it is computed as 100 − AdvancePercent.
	FinalPercent *float64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Worker, error) {
	mode := params.SalaryMode
	if mode == "" {
		mode = salary.ModeSalesPercent
	}

	finPct := 100 - params.AdvancePercent
	if params.FinalPercent != nil {
		finPct = *params.FinalPercent
	}

	w := &Worker{
		FullName:       params.FullName,
		IsActive:       true,
		CardNumber:     params.CardNumber,
		Email:          params.Email,
		PhoneNumber:    params.PhoneNumber,
		SalaryMode:     mode,
		SalaryRate:     params.SalaryRate,
		AdvancePercent: params.AdvancePercent,
		FinalPercent:   finPct,
	}
	if err := s.repo.CreateWorker(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Worker, error) {
	return s.repo.GetWorker(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Worker, error) {
	return s.repo.ListWorkers(ctx)
}

// Update persists new settings for a worker. Orders that already froze a
// stage split keep it; only future orders and live bonus math see the change.
func (s *Service) Update(ctx context.Context, w *Worker) error {
	return s.repo.UpdateWorker(ctx, w)
}
