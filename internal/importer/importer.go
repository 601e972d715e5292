package importer

import (
	"furnipay/internal/payment"
)

type Bank string

const (
	BankPrivat Bank = "privatbank"
)

// ParsedPayment is one statement row shaped for recording, carrying the
// payer text and the learned worker suggestion alongside the params.
type ParsedPayment struct {
	Params payment.CreateParams

	Payer             string
	SuggestedWorkerID *int64
}
