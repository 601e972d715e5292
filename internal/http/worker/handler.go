package worker

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"furnipay/internal/salary"
	"furnipay/internal/worker"
)

type Handler struct {
	svc *worker.Service
}

func NewHandler(svc *worker.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
}

type workerResponse struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	IsActive    bool   `json:"is_active"`
	CardNumber  string `json:"card_number,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`

	SalaryMode     salary.Mode `json:"salary_mode"`
	SalaryRate     float64     `json:"salary_rate"`
	AdvancePercent float64     `json:"advance_percent"`
	FinalPercent   float64     `json:"final_percent"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(w *worker.Worker) workerResponse {
	return workerResponse{
		ID:             w.ID,
		FullName:       w.FullName,
		IsActive:       w.IsActive,
		CardNumber:     w.CardNumber,
		Email:          w.Email,
		PhoneNumber:    w.PhoneNumber,
		SalaryMode:     w.SalaryMode,
		SalaryRate:     w.SalaryRate,
		AdvancePercent: w.AdvancePercent,
		FinalPercent:   w.FinalPercent,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

type createWorkerRequest struct {
	FullName    string `json:"full_name"`
	CardNumber  string `json:"card_number"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`

	SalaryMode     salary.Mode `json:"salary_mode"`
	SalaryRate     float64     `json:"salary_rate"`
	AdvancePercent float64     `json:"advance_percent"`
	FinalPercent   *float64    `json:"final_percent"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.FullName == "" {
		http.Error(w, "full_name is required", http.StatusBadRequest)
		return
	}

	wk, err := h.svc.Create(r.Context(), worker.CreateParams{
		FullName:       req.FullName,
		CardNumber:     req.CardNumber,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		SalaryMode:     req.SalaryMode,
		SalaryRate:     req.SalaryRate,
		AdvancePercent: req.AdvancePercent,
		FinalPercent:   req.FinalPercent,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(wk)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	workers, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]workerResponse, len(workers))
	for i, wk := range workers {
		resp[i] = toResponse(wk)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	wk, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			http.Error(w, "worker not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(wk)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateWorkerRequest struct {
	FullName    *string `json:"full_name"`
	IsActive    *bool   `json:"is_active"`
	CardNumber  *string `json:"card_number"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`

	SalaryMode     *salary.Mode `json:"salary_mode"`
	SalaryRate     *float64     `json:"salary_rate"`
	AdvancePercent *float64     `json:"advance_percent"`
	FinalPercent   *float64     `json:"final_percent"`
}

// update changes compensation settings going forward. Stage splits already
// frozen onto existing orders stay as they were.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wk, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			http.Error(w, "worker not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.FullName != nil {
		wk.FullName = *req.FullName
	}

	if req.IsActive != nil {
		wk.IsActive = *req.IsActive
	}

	if req.CardNumber != nil {
		wk.CardNumber = *req.CardNumber
	}

	if req.Email != nil {
		wk.Email = *req.Email
	}

	if req.PhoneNumber != nil {
		wk.PhoneNumber = *req.PhoneNumber
	}

	if req.SalaryMode != nil {
		wk.SalaryMode = *req.SalaryMode
	}

	if req.SalaryRate != nil {
		wk.SalaryRate = *req.SalaryRate
	}

	if req.AdvancePercent != nil {
		wk.AdvancePercent = *req.AdvancePercent
	}

	if req.FinalPercent != nil {
		wk.FinalPercent = *req.FinalPercent
	}

	if err := h.svc.Update(r.Context(), wk); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(wk)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
