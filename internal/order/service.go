package order

import (
	"context"
	"fmt"
	"time"

	"furnipay/internal/worker"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id int64) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateOrder(ctx context.Context, o *Order) error
	DeleteOrder(ctx context.Context, id int64) error
}

// WorkerGetter resolves the worker whose stage split gets frozen onto an
// order at creation or reassignment time.
type WorkerGetter interface {
	Get(ctx context.Context, id int64) (*worker.Worker, error)
}

type Service struct {
	repo    Repository
	workers WorkerGetter
}

func NewService(repo Repository, workers WorkerGetter) *Service {
	return &Service{repo: repo, workers: workers}
}

type ListFilter struct {
	WorkerID *int64
}

type CreateParams struct {
	Name         string
	Price        int64
	MaterialCost int64
	ProductTypes []string

	DateReceived       *time.Time
	DateDesignDeadline *time.Time
	DateToWork         *time.Time
	DateInstallation   *time.Time

	WorkerID   *int64
	FixedBonus *int64

	// Explicit per-order split; when nil and a worker is assigned, the
	// worker's current defaults are frozen in instead.
	AdvancePercent *float64
	FinalPercent   *float64
}

// Create stores a new order. When a worker is assigned and the caller did
// not supply an explicit split, the worker's *current* stage percentages
// are copied onto the order. Later changes to the worker's settings must
// not reach back into orders created before them.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Order, error) {
	o := &Order{
		Name:               params.Name,
		Price:              params.Price,
		MaterialCost:       params.MaterialCost,
		ProductTypes:       params.ProductTypes,
		DateReceived:       params.DateReceived,
		DateDesignDeadline: params.DateDesignDeadline,
		DateToWork:         params.DateToWork,
		DateInstallation:   params.DateInstallation,
		WorkerID:           params.WorkerID,
		FixedBonus:         params.FixedBonus,
		AdvancePercent:     params.AdvancePercent,
		FinalPercent:       params.FinalPercent,
	}

	if params.WorkerID != nil && params.AdvancePercent == nil {
		w, err := s.workers.Get(ctx, *params.WorkerID)
		if err != nil {
			return nil, fmt.Errorf("resolving worker %d: %w", *params.WorkerID, err)
		}

		adv, fin := w.AdvancePercent, w.FinalPercent
		o.AdvancePercent = &adv
		o.FinalPercent = &fin
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.ListOrders(ctx, filter)
}

// Delete removes the order. Ledger entries that funded it are left in
// place; a payment that targeted this order simply keeps its money
// unallocated from now on.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteOrder(ctx, id)
}

type UpdateParams struct {
	Name         *string
	Price        *int64
	MaterialCost *int64
	ProductTypes []string

	DateReceived       *time.Time
	DateDesignDeadline *time.Time
	DateToWork         *time.Time
	DateInstallation   *time.Time

	FixedBonus     *int64
	AdvancePercent *float64
	FinalPercent   *float64

	ClearDateToWork       bool
	ClearDateInstallation bool
}

type UpdateResult struct {
	Order *Order
	// GatingDatesChanged reports whether date_to_work or date_installation
	// moved; the caller is expected to trigger a reconciliation pass.
	GatingDatesChanged bool
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*UpdateResult, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	oldToWork := o.DateToWork
	oldInstallation := o.DateInstallation

	if params.Name != nil {
		o.Name = *params.Name
	}

	if params.Price != nil {
		o.Price = *params.Price
	}

	if params.MaterialCost != nil {
		o.MaterialCost = *params.MaterialCost
	}

	if params.ProductTypes != nil {
		o.ProductTypes = params.ProductTypes
	}

	if params.DateReceived != nil {
		o.DateReceived = params.DateReceived
	}

	if params.DateDesignDeadline != nil {
		o.DateDesignDeadline = params.DateDesignDeadline
	}

	if params.DateToWork != nil {
		o.DateToWork = params.DateToWork
	}

	if params.ClearDateToWork {
		o.DateToWork = nil
	}

	if params.DateInstallation != nil {
		o.DateInstallation = params.DateInstallation
	}

	if params.ClearDateInstallation {
		o.DateInstallation = nil
	}

	if params.FixedBonus != nil {
		o.FixedBonus = params.FixedBonus
	}

	if params.AdvancePercent != nil {
		o.AdvancePercent = params.AdvancePercent
	}

	if params.FinalPercent != nil {
		o.FinalPercent = params.FinalPercent
	}

	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}

	return &UpdateResult{
		Order: o,
		GatingDatesChanged: !equalDate(oldToWork, o.DateToWork) ||
			!equalDate(oldInstallation, o.DateInstallation),
	}, nil
}

// ReassignWorker moves the order to a new worker and re-freezes the stage
// split from that worker's current defaults. The re-freeze is a full
// replacement, not a merge with the previous override.
func (s *Service) ReassignWorker(ctx context.Context, id, workerID int64) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	w, err := s.workers.Get(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("resolving worker %d: %w", workerID, err)
	}

	adv, fin := w.AdvancePercent, w.FinalPercent
	o.WorkerID = &workerID
	o.AdvancePercent = &adv
	o.FinalPercent = &fin

	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func equalDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(*b)
}
