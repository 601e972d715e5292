package importer

import (
	"context"
	"fmt"
	"io"

	"furnipay/internal/importer/privatbank"
	"furnipay/internal/payment"
)

// Matcher suggests a worker for a payer name. Zero means no suggestion.
type Matcher interface {
	Suggest(ctx context.Context, payerName string) (int64, error)
}

type Service struct {
	privat  *privatbank.Parser
	matcher Matcher
}

func NewService(matcher Matcher) *Service {
	return &Service{
		privat:  privatbank.NewParser(),
		matcher: matcher,
	}
}

// Import parses a bank statement into payment params ready for batch
// recording. Each row carries the payer text and, when a learned mapping
// matches, a suggested worker to pre-fill the payment's worker filter.
func (s *Service) Import(ctx context.Context, bank Bank, r io.Reader) ([]ParsedPayment, error) {
	var rows []privatbank.Row

	switch bank {
	case BankPrivat:
		var err error

		rows, err = s.privat.Parse(r)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	parsed := make([]ParsedPayment, 0, len(rows))

	for _, row := range rows {
		pp := ParsedPayment{
			Params: payment.CreateParams{
				Amount:       row.Amount,
				DateReceived: row.Date,
				Notes:        row.Purpose,
			},
			Payer: row.Payer,
		}

		if s.matcher != nil && row.Payer != "" {
			workerID, err := s.matcher.Suggest(ctx, row.Payer)
			if err != nil {
				return nil, fmt.Errorf("suggesting worker for %q: %w", row.Payer, err)
			}

			if workerID != 0 {
				pp.SuggestedWorkerID = &workerID
				pp.Params.WorkerID = &workerID
			}
		}

		parsed = append(parsed, pp)
	}

	return parsed, nil
}
