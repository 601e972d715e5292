package payment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"furnipay/internal/payment"
)

type Handler struct {
	svc *payment.Service
}

func NewHandler(svc *payment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Post("/redistribute", h.redistribute)
	r.Post("/rebuild", h.rebuild)
	r.Get("/{id}", h.get)
	r.Get("/{id}/allocations", h.allocations)
	r.Delete("/{id}", h.delete)
}

type recordPaymentRequest struct {
	Amount       int64     `json:"amount"`
	DateReceived time.Time `json:"date_received"`
	OrderID      *int64    `json:"order_id"`
	WorkerID     *int64    `json:"worker_id"`
	Notes        string    `json:"notes"`
}

type recordPaymentResponse struct {
	Payment     paymentResponse      `json:"payment"`
	Allocations []allocationResponse `json:"allocations"`
	Remaining   int64                `json:"remaining"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	if req.DateReceived.IsZero() {
		http.Error(w, "date_received is required", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Record(r.Context(), payment.CreateParams{
		Amount:       req.Amount,
		DateReceived: req.DateReceived,
		OrderID:      req.OrderID,
		WorkerID:     req.WorkerID,
		Notes:        req.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := recordPaymentResponse{
		Payment:     toResponse(result.Payment),
		Allocations: toAllocationList(result.Allocations),
		Remaining:   result.Remaining,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(payments)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) allocations(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	allocs, err := h.svc.Allocations(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toAllocationList(allocs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// delete undoes exactly the deleted payment's allocations and removes it.
// No follow-up redistribution: other payments keep their placements.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type passResponse struct {
	Allocations []allocationResponse `json:"allocations"`
}

func (h *Handler) redistribute(w http.ResponseWriter, r *http.Request) {
	allocs, err := h.svc.ReconcileAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(passResponse{Allocations: toAllocationList(allocs)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// rebuild wipes the whole ledger and redistributes every payment from
// scratch. Emergency use only.
func (h *Handler) rebuild(w http.ResponseWriter, r *http.Request) {
	allocs, err := h.svc.Rebuild(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(passResponse{Allocations: toAllocationList(allocs)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type statsResponse struct {
	TotalReceived  int64 `json:"total_received"`
	TotalAllocated int64 `json:"total_allocated"`
	Unallocated    int64 `json:"unallocated"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := statsResponse{
		TotalReceived:  stats.TotalReceived,
		TotalAllocated: stats.TotalAllocated,
		Unallocated:    stats.Unallocated,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
