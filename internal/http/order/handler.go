package order

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"furnipay/internal/deduction"
	"furnipay/internal/order"
	"furnipay/internal/payment"
	"furnipay/internal/salary"
	"furnipay/internal/worker"
)

type Handler struct {
	orders     *order.Service
	workers    *worker.Service
	payments   *payment.Service
	deductions *deduction.Service
}

func NewHandler(
	orders *order.Service,
	workers *worker.Service,
	payments *payment.Service,
	deductions *deduction.Service,
) *Handler {
	return &Handler{
		orders:     orders,
		workers:    workers,
		payments:   payments,
		deductions: deductions,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/reassign", h.reassign)
}

// snapshot assembles the live read model for one order: recomputed bonus
// and stage amounts plus debt netted against unpaid deductions.
func (h *Handler) snapshot(r *http.Request, o *order.Order) (salary.Snapshot, int64, int64, error) {
	var settings *salary.WorkerSettings

	if o.WorkerID != nil {
		w, err := h.workers.Get(r.Context(), *o.WorkerID)
		if err != nil && !errors.Is(err, worker.ErrNotFound) {
			return salary.Snapshot{}, 0, 0, err
		}

		settings = w.Settings()
	}

	snap := salary.Compute(salary.Inputs{
		Price:            o.Price,
		MaterialCost:     o.MaterialCost,
		FixedBonus:       o.FixedBonus,
		AdvancePercent:   o.AdvancePercent,
		FinalPercent:     o.FinalPercent,
		AdvancePaid:      o.AdvancePaid,
		FinalPaid:        o.FinalPaid,
		DateToWork:       o.DateToWork,
		DateAdvancePaid:  o.DateAdvancePaid,
		DateInstallation: o.DateInstallation,
		DateFinalPaid:    o.DateFinalPaid,
		Worker:           settings,
	})

	unpaid, err := h.deductions.UnpaidTotal(r.Context(), o.ID)
	if err != nil {
		return salary.Snapshot{}, 0, 0, err
	}

	net, credit := salary.NetDebt(snap.CurrentDebt, unpaid)

	return snap, net, credit, nil
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, o *order.Order, status int) {
	snap, net, credit, err := h.snapshot(r, o)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(toResponse(o, snap, net, credit)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createOrderRequest struct {
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	MaterialCost int64    `json:"material_cost"`
	ProductTypes []string `json:"product_types"`

	DateReceived       *time.Time `json:"date_received"`
	DateDesignDeadline *time.Time `json:"date_design_deadline"`
	DateToWork         *time.Time `json:"date_to_work"`
	DateInstallation   *time.Time `json:"date_installation"`

	WorkerID       *int64   `json:"worker_id"`
	FixedBonus     *int64   `json:"fixed_bonus"`
	AdvancePercent *float64 `json:"advance_percent"`
	FinalPercent   *float64 `json:"final_percent"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	o, err := h.orders.Create(r.Context(), order.CreateParams{
		Name:               req.Name,
		Price:              req.Price,
		MaterialCost:       req.MaterialCost,
		ProductTypes:       req.ProductTypes,
		DateReceived:       req.DateReceived,
		DateDesignDeadline: req.DateDesignDeadline,
		DateToWork:         req.DateToWork,
		DateInstallation:   req.DateInstallation,
		WorkerID:           req.WorkerID,
		FixedBonus:         req.FixedBonus,
		AdvancePercent:     req.AdvancePercent,
		FinalPercent:       req.FinalPercent,
	})
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			http.Error(w, "worker not found", http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	// A new order with gating dates may be fundable by idle money.
	if o.DateToWork != nil || o.DateInstallation != nil {
		if _, err := h.payments.ReconcileAll(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		o, err = h.orders.Get(r.Context(), o.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	h.respond(w, r, o, http.StatusCreated)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := order.ListFilter{}

	if s := r.URL.Query().Get("worker_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid worker_id", http.StatusBadRequest)
			return
		}

		filter.WorkerID = &id
	}

	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]orderResponse, 0, len(orders))

	for _, o := range orders {
		snap, net, credit, err := h.snapshot(r, o)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		resp = append(resp, toResponse(o, snap, net, credit))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.respond(w, r, o, http.StatusOK)
}

type updateOrderRequest struct {
	Name         *string  `json:"name"`
	Price        *int64   `json:"price"`
	MaterialCost *int64   `json:"material_cost"`
	ProductTypes []string `json:"product_types"`

	DateReceived       *time.Time `json:"date_received"`
	DateDesignDeadline *time.Time `json:"date_design_deadline"`
	DateToWork         *time.Time `json:"date_to_work"`
	DateInstallation   *time.Time `json:"date_installation"`

	FixedBonus     *int64   `json:"fixed_bonus"`
	AdvancePercent *float64 `json:"advance_percent"`
	FinalPercent   *float64 `json:"final_percent"`

	ClearDateToWork       bool `json:"clear_date_to_work"`
	ClearDateInstallation bool `json:"clear_date_installation"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.orders.Update(r.Context(), id, order.UpdateParams{
		Name:                  req.Name,
		Price:                 req.Price,
		MaterialCost:          req.MaterialCost,
		ProductTypes:          req.ProductTypes,
		DateReceived:          req.DateReceived,
		DateDesignDeadline:    req.DateDesignDeadline,
		DateToWork:            req.DateToWork,
		DateInstallation:      req.DateInstallation,
		FixedBonus:            req.FixedBonus,
		AdvancePercent:        req.AdvancePercent,
		FinalPercent:          req.FinalPercent,
		ClearDateToWork:       req.ClearDateToWork,
		ClearDateInstallation: req.ClearDateInstallation,
	})
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	o := res.Order

	// Gating date changes open or close stages, so idle money may now be
	// placeable (or a redistribution pass is simply due).
	if res.GatingDatesChanged {
		if _, err := h.payments.ReconcileAll(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		o, err = h.orders.Get(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	h.respond(w, r, o, http.StatusOK)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type reassignRequest struct {
	WorkerID int64 `json:"worker_id"`
}

func (h *Handler) reassign(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req reassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.orders.ReassignWorker(r.Context(), id, req.WorkerID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			http.Error(w, "order not found", http.StatusNotFound)
		case errors.Is(err, worker.ErrNotFound):
			http.Error(w, "worker not found", http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	h.respond(w, r, o, http.StatusOK)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
