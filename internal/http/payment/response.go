package payment

import (
	"time"

	"github.com/google/uuid"

	"furnipay/internal/payment"
)

type paymentResponse struct {
	ID                     int64     `json:"id"`
	Amount                 int64     `json:"amount"`
	DateReceived           time.Time `json:"date_received"`
	AllocatedAutomatically bool      `json:"allocated_automatically"`
	OrderID                *int64    `json:"order_id,omitempty"`
	WorkerID               *int64    `json:"worker_id,omitempty"`
	Notes                  string    `json:"notes,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

type allocationResponse struct {
	ID        uuid.UUID     `json:"id"`
	PaymentID int64         `json:"payment_id"`
	OrderID   int64         `json:"order_id"`
	Stage     payment.Stage `json:"stage"`
	Amount    int64         `json:"amount"`
	CreatedAt time.Time     `json:"created_at"`
}

func toResponse(p *payment.Payment) paymentResponse {
	return paymentResponse{
		ID:                     p.ID,
		Amount:                 p.Amount,
		DateReceived:           p.DateReceived,
		AllocatedAutomatically: p.AllocatedAutomatically,
		OrderID:                p.OrderID,
		WorkerID:               p.WorkerID,
		Notes:                  p.Notes,
		CreatedAt:              p.CreatedAt,
	}
}

func toResponseList(payments []*payment.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toResponse(p)
	}

	return resp
}

func toAllocationList(allocs []*payment.Allocation) []allocationResponse {
	resp := make([]allocationResponse, len(allocs))
	for i, a := range allocs {
		resp[i] = allocationResponse{
			ID:        a.ID,
			PaymentID: a.PaymentID,
			OrderID:   a.OrderID,
			Stage:     a.Stage,
			Amount:    a.Amount,
			CreatedAt: a.CreatedAt,
		}
	}

	return resp
}
