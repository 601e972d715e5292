package deduction

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=deduction
type Repository interface {
	CreateDeduction(ctx context.Context, d *Deduction) error
	GetDeduction(ctx context.Context, id int64) (*Deduction, error)
	ListDeductions(ctx context.Context, filter ListFilter) ([]*Deduction, error)
	UpdateDeduction(ctx context.Context, d *Deduction) error
	DeleteDeduction(ctx context.Context, id int64) error
	UnpaidTotal(ctx context.Context, orderID int64) (int64, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type ListFilter struct {
	OrderID    *int64
	UnpaidOnly bool
}

type CreateParams struct {
	OrderID     int64
	Amount      int64
	Description string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Deduction, error) {
	d := &Deduction{
		OrderID:     params.OrderID,
		Amount:      params.Amount,
		Description: params.Description,
	}

	if err := s.repo.CreateDeduction(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Deduction, error) {
	return s.repo.GetDeduction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Deduction, error) {
	return s.repo.ListDeductions(ctx, filter)
}

// MarkPaid stamps the deduction as settled. Marking an already paid
// deduction again is a no-op that keeps the original paid date.
func (s *Service) MarkPaid(ctx context.Context, id int64) (*Deduction, error) {
	d, err := s.repo.GetDeduction(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.IsPaid {
		return d, nil
	}

	paidAt := s.now()
	d.IsPaid = true
	d.PaidDate = &paidAt

	if err := s.repo.UpdateDeduction(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteDeduction(ctx, id)
}

// UnpaidTotal sums outstanding deductions for one order. The read model
// nets this against the computed debt.
func (s *Service) UnpaidTotal(ctx context.Context, orderID int64) (int64, error) {
	return s.repo.UnpaidTotal(ctx, orderID)
}
