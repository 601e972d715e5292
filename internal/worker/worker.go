package worker

import (
	"errors"
	"time"

	"furnipay/internal/salary"
)

var ErrNotFound = errors.New("worker not found")

// Worker is a constructor's payroll configuration plus contact details.
// Changing these settings never touches the stage split already frozen
// onto existing orders; it only affects future orders and the live bonus
// computation.
type Worker struct {
	ID       int64
	FullName string
	IsActive bool

	CardNumber  string
	Email       string
	PhoneNumber string

	SalaryMode     salary.Mode
	SalaryRate     float64
	AdvancePercent float64
	FinalPercent   float64

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Settings returns the worker's compensation settings in the form the
// salary package consumes.
func (w *Worker) Settings() *salary.WorkerSettings {
	if w == nil {
		return nil
	}

	adv := w.AdvancePercent
	fin := w.FinalPercent

	return &salary.WorkerSettings{
		Mode:           w.SalaryMode,
		Rate:           w.SalaryRate,
		AdvancePercent: &adv,
		FinalPercent:   &fin,
	}
}
