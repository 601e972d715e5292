package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("payment not found")

// Stage identifies which compensation milestone an allocation funds.
type Stage string

const (
	// StageAdvance is paid once the order is handed to production.
	StageAdvance Stage = "advance"
	// StageFinal is paid after installation.
	StageFinal Stage = "final"
)

// Payment is money received from the company to be paid out to workers.
// Amount and DateReceived are immutable once recorded. OrderID pins the
// payment to one specific order; WorkerID restricts it to one worker's
// orders; with neither set the money is pool money, distributed FIFO.
type Payment struct {
	ID           int64
	Amount       int64
	DateReceived time.Time
	CreatedAt    time.Time

	AllocatedAutomatically bool

	OrderID  *int64
	WorkerID *int64

	Notes string
}

// Allocation is one immutable ledger entry: this payment funded that
// order's stage for this amount. The ledger is the append-only source of
// truth; the cached paid counters on orders must always equal the per
// order/stage sums over it.
type Allocation struct {
	ID        uuid.UUID
	PaymentID int64
	OrderID   int64
	Stage     Stage
	Amount    int64
	CreatedAt time.Time
}
