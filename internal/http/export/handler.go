package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"furnipay/internal/export"
	"furnipay/internal/worker"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/statement", h.statement)
	r.Get("/statement/download", h.download)
}

type entryResponse struct {
	Date      time.Time `json:"date"`
	OrderID   int64     `json:"order_id"`
	OrderName string    `json:"order_name"`
	Stage     string    `json:"stage"`
	Amount    int64     `json:"amount"`
}

type statementResponse struct {
	WorkerID   int64           `json:"worker_id"`
	WorkerName string          `json:"worker_name"`
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Entries    []entryResponse `json:"entries"`
	Total      int64           `json:"total"`
	Summary    string          `json:"summary"`
}

// statementParams parses worker_id plus an optional from/to period.
// The period defaults to the current month.
func statementParams(r *http.Request) (int64, time.Time, time.Time, error) {
	workerID, err := strconv.ParseInt(r.URL.Query().Get("worker_id"), 10, 64)
	if err != nil {
		return 0, time.Time{}, time.Time{}, fmt.Errorf("worker_id query parameter is required")
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return 0, time.Time{}, time.Time{}, fmt.Errorf("invalid from date")
		}

		from = t
	}

	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return 0, time.Time{}, time.Time{}, fmt.Errorf("invalid to date")
		}

		to = t
	}

	return workerID, from, to, nil
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	workerID, from, to, err := statementParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.svc.Statement(r.Context(), workerID, from, to)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			http.Error(w, "worker not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	entries := make([]entryResponse, len(st.Entries))
	for i, e := range st.Entries {
		entries[i] = entryResponse{
			Date:      e.Date,
			OrderID:   e.OrderID,
			OrderName: e.OrderName,
			Stage:     string(e.Stage),
			Amount:    e.Amount,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	resp := statementResponse{
		WorkerID:   st.WorkerID,
		WorkerName: st.WorkerName,
		From:       st.From,
		To:         st.To,
		Entries:    entries,
		Total:      st.Total,
		Summary:    h.svc.SummaryBody(st),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	workerID, from, to, err := statementParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.svc.Statement(r.Context(), workerID, from, to)
	if err != nil {
		if errors.Is(err, worker.ErrNotFound) {
			http.Error(w, "worker not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"statement_%d_%s.csv\"", workerID, from.Format("200601")))

	if err := h.svc.WriteCSV(w, st); err != nil {
		slog.Error("failed to write statement csv", "error", err)
	}
}
