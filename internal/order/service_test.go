package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"furnipay/internal/order"
	"furnipay/internal/salary"
	"furnipay/internal/worker"
)

func ptr[T any](v T) *T { return &v }

func dateAt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testWorker(advance, final float64) *worker.Worker {
	return &worker.Worker{
		ID:             7,
		FullName:       "Марушак",
		SalaryMode:     salary.ModeSalesPercent,
		SalaryRate:     10,
		AdvancePercent: advance,
		FinalPercent:   final,
	}
}

func TestService_Create_FreezesWorkerSplit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	workers := order.NewMockWorkerGetter(ctrl)
	svc := order.NewService(repo, workers)

	workers.EXPECT().Get(gomock.Any(), int64(7)).Return(testWorker(70, 30), nil)
	repo.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *order.Order) error {
			o.ID = 1
			return nil
		})

	o, err := svc.Create(context.Background(), order.CreateParams{
		Name:     "Кухня",
		Price:    50_000_00,
		WorkerID: ptr(int64(7)),
	})
	require.NoError(t, err)

	require.NotNil(t, o.AdvancePercent)
	require.NotNil(t, o.FinalPercent)
	assert.Equal(t, 70.0, *o.AdvancePercent)
	assert.Equal(t, 30.0, *o.FinalPercent)
}

// The frozen split is a copy taken at creation time: orders created after
// a settings change pick up the new split, earlier orders keep the old one.
func TestService_Create_FreezeIsPerOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	workers := order.NewMockWorkerGetter(ctrl)
	svc := order.NewService(repo, workers)

	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	workers.EXPECT().Get(gomock.Any(), int64(7)).Return(testWorker(70, 30), nil)

	first, err := svc.Create(context.Background(), order.CreateParams{
		Name:     "Шафа",
		WorkerID: ptr(int64(7)),
	})
	require.NoError(t, err)

	// The worker's split changes to 20/80 before the second order.
	workers.EXPECT().Get(gomock.Any(), int64(7)).Return(testWorker(20, 80), nil)

	second, err := svc.Create(context.Background(), order.CreateParams{
		Name:     "Стіл",
		WorkerID: ptr(int64(7)),
	})
	require.NoError(t, err)

	assert.Equal(t, 70.0, *first.AdvancePercent)
	assert.Equal(t, 20.0, *second.AdvancePercent)
	assert.Equal(t, 80.0, *second.FinalPercent)
}

func TestService_Create_ExplicitSplitWinsOverWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	workers := order.NewMockWorkerGetter(ctrl)
	svc := order.NewService(repo, workers)

	// No worker lookup: the caller supplied the split.
	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil)

	o, err := svc.Create(context.Background(), order.CreateParams{
		Name:           "Тумба",
		WorkerID:       ptr(int64(7)),
		AdvancePercent: ptr(100.0),
		FinalPercent:   ptr(0.0),
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, *o.AdvancePercent)
	assert.Equal(t, 0.0, *o.FinalPercent)
}

func TestService_Create_NoWorkerNoSplit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	workers := order.NewMockWorkerGetter(ctrl)
	svc := order.NewService(repo, workers)

	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil)

	o, err := svc.Create(context.Background(), order.CreateParams{Name: "Легасі"})
	require.NoError(t, err)

	assert.Nil(t, o.AdvancePercent)
	assert.Nil(t, o.FinalPercent)
}

func TestService_Create_WorkerLookupFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	workers := order.NewMockWorkerGetter(ctrl)
	svc := order.NewService(repo, workers)

	workers.EXPECT().Get(gomock.Any(), int64(7)).Return(nil, worker.ErrNotFound)

	_, err := svc.Create(context.Background(), order.CreateParams{
		Name:     "Кухня",
		WorkerID: ptr(int64(7)),
	})
	assert.ErrorIs(t, err, worker.ErrNotFound)
}

func TestService_ReassignWorker_RefreezesSplit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	workers := order.NewMockWorkerGetter(ctrl)
	svc := order.NewService(repo, workers)

	existing := &order.Order{
		ID:             1,
		Name:           "Кухня",
		WorkerID:       ptr(int64(7)),
		AdvancePercent: ptr(70.0),
		FinalPercent:   ptr(30.0),
	}

	repo.EXPECT().GetOrder(gomock.Any(), int64(1)).Return(existing, nil)
	workers.EXPECT().Get(gomock.Any(), int64(8)).Return(&worker.Worker{
		ID:             8,
		AdvancePercent: 40,
		FinalPercent:   60,
	}, nil)
	repo.EXPECT().UpdateOrder(gomock.Any(), existing).Return(nil)

	o, err := svc.ReassignWorker(context.Background(), 1, 8)
	require.NoError(t, err)

	assert.Equal(t, int64(8), *o.WorkerID)
	assert.Equal(t, 40.0, *o.AdvancePercent)
	assert.Equal(t, 60.0, *o.FinalPercent)
}

func TestService_Update_ReportsGatingDateChanges(t *testing.T) {
	tests := []struct {
		name        string
		existing    *order.Order
		params      order.UpdateParams
		wantChanged bool
	}{
		{
			name:        "SettingToWorkDate",
			existing:    &order.Order{ID: 1},
			params:      order.UpdateParams{DateToWork: ptr(dateAt(2024, 1, 10))},
			wantChanged: true,
		},
		{
			name:        "SettingInstallationDate",
			existing:    &order.Order{ID: 1},
			params:      order.UpdateParams{DateInstallation: ptr(dateAt(2024, 2, 20))},
			wantChanged: true,
		},
		{
			name:        "ClearingToWorkDate",
			existing:    &order.Order{ID: 1, DateToWork: ptr(dateAt(2024, 1, 10))},
			params:      order.UpdateParams{ClearDateToWork: true},
			wantChanged: true,
		},
		{
			name:        "PriceOnlyChange",
			existing:    &order.Order{ID: 1, DateToWork: ptr(dateAt(2024, 1, 10))},
			params:      order.UpdateParams{Price: ptr(int64(123_00))},
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := order.NewMockRepository(ctrl)
			workers := order.NewMockWorkerGetter(ctrl)
			svc := order.NewService(repo, workers)

			repo.EXPECT().GetOrder(gomock.Any(), int64(1)).Return(tt.existing, nil)
			repo.EXPECT().UpdateOrder(gomock.Any(), gomock.Any()).Return(nil)

			res, err := svc.Update(context.Background(), 1, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, res.GatingDatesChanged)
		})
	}
}

func TestService_Update_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	workers := order.NewMockWorkerGetter(ctrl)
	svc := order.NewService(repo, workers)

	repo.EXPECT().GetOrder(gomock.Any(), int64(1)).Return(nil, errors.New("db error"))

	_, err := svc.Update(context.Background(), 1, order.UpdateParams{})
	assert.Error(t, err)
}
