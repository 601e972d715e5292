package deduction_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"furnipay/internal/deduction"
)

func TestService_MarkPaid_StampsDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := deduction.NewMockRepository(ctrl)
	svc := deduction.NewService(repo)

	repo.EXPECT().GetDeduction(gomock.Any(), int64(1)).Return(&deduction.Deduction{
		ID:      1,
		OrderID: 3,
		Amount:  500_00,
	}, nil)
	repo.EXPECT().
		UpdateDeduction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *deduction.Deduction) error {
			assert.True(t, d.IsPaid)
			require.NotNil(t, d.PaidDate)
			return nil
		})

	d, err := svc.MarkPaid(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, d.IsPaid)
}

func TestService_MarkPaid_AlreadyPaidKeepsDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := deduction.NewMockRepository(ctrl)
	svc := deduction.NewService(repo)

	paidAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// No UpdateDeduction expected: marking twice is a no-op.
	repo.EXPECT().GetDeduction(gomock.Any(), int64(1)).Return(&deduction.Deduction{
		ID:       1,
		IsPaid:   true,
		PaidDate: &paidAt,
	}, nil)

	d, err := svc.MarkPaid(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, paidAt, *d.PaidDate)
}

func TestService_MarkPaid_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := deduction.NewMockRepository(ctrl)
	svc := deduction.NewService(repo)

	repo.EXPECT().GetDeduction(gomock.Any(), int64(9)).Return(nil, deduction.ErrNotFound)

	_, err := svc.MarkPaid(context.Background(), 9)
	assert.ErrorIs(t, err, deduction.ErrNotFound)
}
