package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furnipay/internal/export"
	"furnipay/internal/payment"
	"furnipay/internal/worker"
)

type fakeRepo struct {
	name    string
	entries []export.Entry
}

func (f *fakeRepo) WorkerEntries(_ context.Context, _ int64, _, _ time.Time) ([]export.Entry, error) {
	return f.entries, nil
}

func (f *fakeRepo) WorkerName(_ context.Context, _ int64) (string, error) {
	if f.name == "" {
		return "", worker.ErrNotFound
	}

	return f.name, nil
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestStatement_TotalsEntries(t *testing.T) {
	repo := &fakeRepo{
		name: "Марушак Олег",
		entries: []export.Entry{
			{Date: day(1), OrderID: 1, OrderName: "Кухня", Stage: payment.StageAdvance, Amount: 1_250_00},
			{Date: day(10), OrderID: 1, OrderName: "Кухня", Stage: payment.StageFinal, Amount: 1_250_00},
			{Date: day(15), OrderID: 2, OrderName: "Шафа", Stage: payment.StageAdvance, Amount: 800_00},
		},
	}

	svc := export.NewService(repo)

	st, err := svc.Statement(context.Background(), 7, day(1), day(31))
	require.NoError(t, err)

	assert.Equal(t, "Марушак Олег", st.WorkerName)
	assert.Equal(t, int64(3_300_00), st.Total)
	assert.Len(t, st.Entries, 3)
}

func TestStatement_UnknownWorker(t *testing.T) {
	svc := export.NewService(&fakeRepo{})

	_, err := svc.Statement(context.Background(), 99, day(1), day(31))
	assert.ErrorIs(t, err, worker.ErrNotFound)
}

func TestWriteCSV(t *testing.T) {
	svc := export.NewService(nil)

	st := &export.Statement{
		WorkerName: "Марушак Олег",
		From:       day(1),
		To:         day(31),
		Entries: []export.Entry{
			{Date: day(1), OrderID: 1, OrderName: "Кухня", Stage: payment.StageAdvance, Amount: 1_250_00},
		},
		Total: 1_250_00,
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf, st))

	want := "Date;Order;Stage;Amount\n" +
		"2024-03-01;#1 Кухня;advance;1250.00\n" +
		";;Total;1250.00\n"
	assert.Equal(t, want, buf.String())
}

func TestSummaryBody(t *testing.T) {
	svc := export.NewService(nil)

	st := &export.Statement{
		WorkerName: "Марушак Олег",
		From:       day(1),
		To:         day(31),
		Entries: []export.Entry{
			{Date: day(1), OrderID: 1, OrderName: "Кухня", Stage: payment.StageAdvance, Amount: 1_250_00},
			{Date: day(15), OrderID: 2, OrderName: "Шафа", Stage: payment.StageFinal, Amount: 800_00},
		},
		Total: 2_050_00,
	}

	body := svc.SummaryBody(st)

	assert.Contains(t, body, "Марушак Олег: payouts 2024-03-01 - 2024-03-31")
	assert.Contains(t, body, "* 2024-03-01 | #1 Кухня | advance | 1250.00")
	assert.Contains(t, body, "* 2024-03-15 | #2 Шафа | final | 800.00")
	assert.Contains(t, body, "Total: 2050.00")
}
