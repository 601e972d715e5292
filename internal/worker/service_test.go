package worker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"furnipay/internal/salary"
	"furnipay/internal/worker"
)

func TestService_Create_FinalPercentDefaultsToComplement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := worker.NewMockRepository(ctrl)
	svc := worker.NewService(repo)

	repo.EXPECT().CreateWorker(gomock.Any(), gomock.Any()).Return(nil)

	w, err := svc.Create(context.Background(), worker.CreateParams{
		FullName:       "Марушак Олег",
		SalaryRate:     10,
		AdvancePercent: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, w.AdvancePercent)
	assert.Equal(t, 70.0, w.FinalPercent)
	assert.Equal(t, salary.ModeSalesPercent, w.SalaryMode)
	assert.True(t, w.IsActive)
}

func TestService_Create_ExplicitFinalPercentKept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := worker.NewMockRepository(ctrl)
	svc := worker.NewService(repo)

	repo.EXPECT().CreateWorker(gomock.Any(), gomock.Any()).Return(nil)

	fin := 50.0

	w, err := svc.Create(context.Background(), worker.CreateParams{
		FullName:       "Коваль Іван",
		SalaryMode:     salary.ModeFixedAmount,
		SalaryRate:     20_000_00,
		AdvancePercent: 100,
		FinalPercent:   &fin,
	})
	require.NoError(t, err)

	// The pair is stored as given, even though it does not sum to 100.
	assert.Equal(t, 100.0, w.AdvancePercent)
	assert.Equal(t, 50.0, w.FinalPercent)
	assert.Equal(t, salary.ModeFixedAmount, w.SalaryMode)
}
