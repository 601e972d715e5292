package order

import (
	"time"

	"furnipay/internal/order"
	"furnipay/internal/salary"
)

type snapshotResponse struct {
	Bonus            int64         `json:"bonus"`
	AdvanceAmount    int64         `json:"advance_amount"`
	FinalAmount      int64         `json:"final_amount"`
	AdvanceRemaining int64         `json:"advance_remaining"`
	FinalRemaining   int64         `json:"final_remaining"`
	Remainder        int64         `json:"remainder"`
	CurrentDebt      int64         `json:"current_debt"`
	NetDebt          int64         `json:"net_debt"`
	Credit           int64         `json:"credit"`
	CriticalDebt     bool          `json:"critical_debt"`
	Status           salary.Status `json:"status"`
}

type orderResponse struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	MaterialCost int64    `json:"material_cost"`
	ProductTypes []string `json:"product_types,omitempty"`

	DateReceived       *time.Time `json:"date_received,omitempty"`
	DateDesignDeadline *time.Time `json:"date_design_deadline,omitempty"`
	DateToWork         *time.Time `json:"date_to_work,omitempty"`
	DateAdvancePaid    *time.Time `json:"date_advance_paid,omitempty"`
	DateInstallation   *time.Time `json:"date_installation,omitempty"`
	DateFinalPaid      *time.Time `json:"date_final_paid,omitempty"`

	AdvancePaid int64 `json:"advance_paid"`
	FinalPaid   int64 `json:"final_paid"`

	WorkerID       *int64   `json:"worker_id,omitempty"`
	FixedBonus     *int64   `json:"fixed_bonus,omitempty"`
	AdvancePercent *float64 `json:"advance_percent,omitempty"`
	FinalPercent   *float64 `json:"final_percent,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	Snapshot snapshotResponse `json:"snapshot"`
}

func toResponse(o *order.Order, snap salary.Snapshot, netDebt, credit int64) orderResponse {
	return orderResponse{
		ID:                 o.ID,
		Name:               o.Name,
		Price:              o.Price,
		MaterialCost:       o.MaterialCost,
		ProductTypes:       o.ProductTypes,
		DateReceived:       o.DateReceived,
		DateDesignDeadline: o.DateDesignDeadline,
		DateToWork:         o.DateToWork,
		DateAdvancePaid:    o.DateAdvancePaid,
		DateInstallation:   o.DateInstallation,
		DateFinalPaid:      o.DateFinalPaid,
		AdvancePaid:        o.AdvancePaid,
		FinalPaid:          o.FinalPaid,
		WorkerID:           o.WorkerID,
		FixedBonus:         o.FixedBonus,
		AdvancePercent:     o.AdvancePercent,
		FinalPercent:       o.FinalPercent,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		Snapshot: snapshotResponse{
			Bonus:            snap.Bonus,
			AdvanceAmount:    snap.AdvanceAmount,
			FinalAmount:      snap.FinalAmount,
			AdvanceRemaining: snap.AdvanceRemaining,
			FinalRemaining:   snap.FinalRemaining,
			Remainder:        snap.Remainder,
			CurrentDebt:      snap.CurrentDebt,
			NetDebt:          netDebt,
			Credit:           credit,
			CriticalDebt:     snap.CriticalDebt,
			Status:           snap.Status,
		},
	}
}
