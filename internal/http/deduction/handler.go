package deduction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"furnipay/internal/deduction"
)

type Handler struct {
	svc *deduction.Service
}

func NewHandler(svc *deduction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/{id}/pay", h.markPaid)
	r.Delete("/{id}", h.delete)
}

type deductionResponse struct {
	ID          int64      `json:"id"`
	OrderID     int64      `json:"order_id"`
	Amount      int64      `json:"amount"`
	Description string     `json:"description,omitempty"`
	IsPaid      bool       `json:"is_paid"`
	PaidDate    *time.Time `json:"paid_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toResponse(d *deduction.Deduction) deductionResponse {
	return deductionResponse{
		ID:          d.ID,
		OrderID:     d.OrderID,
		Amount:      d.Amount,
		Description: d.Description,
		IsPaid:      d.IsPaid,
		PaidDate:    d.PaidDate,
		CreatedAt:   d.CreatedAt,
	}
}

type createDeductionRequest struct {
	OrderID     int64  `json:"order_id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.OrderID == 0 || req.Amount <= 0 {
		http.Error(w, "order_id and a positive amount are required", http.StatusBadRequest)
		return
	}

	d, err := h.svc.Create(r.Context(), deduction.CreateParams{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := deduction.ListFilter{}

	if s := r.URL.Query().Get("order_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid order_id", http.StatusBadRequest)
			return
		}

		filter.OrderID = &id
	}

	if r.URL.Query().Get("unpaid") == "true" {
		filter.UnpaidOnly = true
	}

	deductions, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]deductionResponse, len(deductions))
	for i, d := range deductions {
		resp[i] = toResponse(d)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	d, err := h.svc.MarkPaid(r.Context(), id)
	if err != nil {
		if errors.Is(err, deduction.ErrNotFound) {
			http.Error(w, "deduction not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(d)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, deduction.ErrNotFound) {
			http.Error(w, "deduction not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
