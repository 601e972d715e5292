package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"furnipay/internal/payment"
)

// Entry is one ledger allocation attributed to a worker, joined with the
// order it funded.
type Entry struct {
	Date      time.Time
	OrderID   int64
	OrderName string
	Stage     payment.Stage
	Amount    int64
}

// Statement is a worker's payout statement for a period.
type Statement struct {
	WorkerID   int64
	WorkerName string
	From       time.Time
	To         time.Time

	Entries []Entry
	Total   int64
}

type Repository interface {
	WorkerEntries(ctx context.Context, workerID int64, from, to time.Time) ([]Entry, error)
	WorkerName(ctx context.Context, workerID int64) (string, error)
}

// Service builds payout statements from the allocation ledger.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Statement collects a worker's allocations over the period and totals them.
func (s *Service) Statement(ctx context.Context, workerID int64, from, to time.Time) (*Statement, error) {
	name, err := s.repo.WorkerName(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("resolving worker %d: %w", workerID, err)
	}

	entries, err := s.repo.WorkerEntries(ctx, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	st := &Statement{
		WorkerID:   workerID,
		WorkerName: name,
		From:       from,
		To:         to,
		Entries:    entries,
	}

	for _, e := range entries {
		st.Total += e.Amount
	}

	return st, nil
}

// WriteCSV renders the statement as a semicolon-separated file, one row
// per allocation plus a totals row.
func (s *Service) WriteCSV(w io.Writer, st *Statement) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"Date", "Order", "Stage", "Amount"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range st.Entries {
		row := []string{
			e.Date.Format("2006-01-02"),
			fmt.Sprintf("#%d %s", e.OrderID, e.OrderName),
			string(e.Stage),
			formatAmount(e.Amount),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := cw.Write([]string{"", "", "Total", formatAmount(st.Total)}); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	cw.Flush()

	return cw.Error()
}

// SummaryBody creates a plain-text summary suitable for a message to the
// worker, one line per allocation.
func (s *Service) SummaryBody(st *Statement) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: payouts %s - %s\n\n",
		st.WorkerName,
		st.From.Format("2006-01-02"),
		st.To.Format("2006-01-02"),
	))

	for _, e := range st.Entries {
		sb.WriteString(fmt.Sprintf("* %s | #%d %s | %s | %s\n",
			e.Date.Format("2006-01-02"),
			e.OrderID,
			e.OrderName,
			e.Stage,
			formatAmount(e.Amount),
		))
	}

	sb.WriteString(fmt.Sprintf("\nTotal: %s\n", formatAmount(st.Total)))

	return sb.String()
}

func formatAmount(kopecks int64) string {
	return fmt.Sprintf("%d.%02d", kopecks/100, kopecks%100)
}
