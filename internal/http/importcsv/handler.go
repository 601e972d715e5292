package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"furnipay/internal/importer"
	"furnipay/internal/matching"
	"furnipay/internal/payment"
)

type Handler struct {
	importSvc  *importer.Service
	paymentSvc *payment.Service
	matchSvc   *matching.Service
}

func NewHandler(importSvc *importer.Service, paymentSvc *payment.Service, matchSvc *matching.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		paymentSvc: paymentSvc,
		matchSvc:   matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importStatement)
	r.Post("/confirm", h.confirmImport)
}

type parsedPaymentDTO struct {
	Amount            int64     `json:"amount"`
	DateReceived      time.Time `json:"date_received"`
	Notes             string    `json:"notes"`
	Payer             string    `json:"payer"`
	SuggestedWorkerID *int64    `json:"suggested_worker_id,omitempty"`
}

type importPreviewResponse struct {
	Parsed []parsedPaymentDTO `json:"parsed"`
}

// importStatement parses the uploaded statement and returns a preview.
// Nothing is recorded yet: the operator reviews payer/worker suggestions
// before confirming.
func (h *Handler) importStatement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		http.Error(w, "bank field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	parsed, err := h.importSvc.Import(r.Context(), bank, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := importPreviewResponse{Parsed: make([]parsedPaymentDTO, 0, len(parsed))}

	for _, p := range parsed {
		resp.Parsed = append(resp.Parsed, parsedPaymentDTO{
			Amount:            p.Params.Amount,
			DateReceived:      p.Params.DateReceived,
			Notes:             p.Params.Notes,
			Payer:             p.Payer,
			SuggestedWorkerID: p.SuggestedWorkerID,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmPaymentDTO struct {
	Amount       int64     `json:"amount"`
	DateReceived time.Time `json:"date_received"`
	OrderID      *int64    `json:"order_id"`
	WorkerID     *int64    `json:"worker_id"`
	Notes        string    `json:"notes"`

	// Payer, when present with a confirmed worker, is learned as a
	// pattern for future imports.
	Payer string `json:"payer"`
}

type confirmRequest struct {
	Payments []confirmPaymentDTO `json:"payments"`
}

type confirmResponse struct {
	Recorded  int   `json:"recorded"`
	Remaining int64 `json:"remaining"`
}

// confirmImport records the reviewed payments. Each recording runs a
// distribution pass, so money lands on orders as it is confirmed.
func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var remaining int64

	for _, p := range req.Payments {
		result, err := h.paymentSvc.Record(r.Context(), payment.CreateParams{
			Amount:       p.Amount,
			DateReceived: p.DateReceived,
			OrderID:      p.OrderID,
			WorkerID:     p.WorkerID,
			Notes:        p.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		remaining += result.Remaining

		if p.Payer != "" && p.WorkerID != nil {
			if err := h.matchSvc.Learn(r.Context(), p.Payer, *p.WorkerID); err != nil {
				slog.Error("failed to learn payer mapping", "payer", p.Payer, "error", err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := confirmResponse{Recorded: len(req.Payments), Remaining: remaining}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
