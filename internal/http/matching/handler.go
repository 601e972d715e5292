package matching

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"furnipay/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Payer    string `json:"payer"`
	WorkerID *int64 `json:"worker_id,omitempty"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	payer := r.URL.Query().Get("payer")
	if payer == "" {
		http.Error(w, "payer query parameter is required", http.StatusBadRequest)
		return
	}

	workerID, err := h.svc.Suggest(r.Context(), payer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := suggestResponse{Payer: payer}
	if workerID != 0 {
		resp.WorkerID = &workerID
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	PayerPattern string `json:"payer_pattern"`
	WorkerID     int64  `json:"worker_id"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.PayerPattern == "" || req.WorkerID == 0 {
		http.Error(w, "payer_pattern and worker_id are required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), req.PayerPattern, req.WorkerID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
