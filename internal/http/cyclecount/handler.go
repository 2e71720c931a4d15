package cyclecount

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/cyclecount"
	"github.com/rgoodman/depot/internal/product"
)

type Handler struct {
	svc *cyclecount.Service
}

func NewHandler(svc *cyclecount.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
}

func actor(r *http.Request) string {
	if a := r.Header.Get("X-Actor"); a != "" {
		return a
	}

	return "system"
}

type recordCountRequest struct {
	ProductID       uuid.UUID `json:"product_id"`
	CountedQuantity int       `json:"counted_quantity"`
	Reason          string    `json:"reason"`
}

type countResponse struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	CountedQuantity int       `json:"counted_quantity"`
	SystemQuantity  int       `json:"system_quantity"`
	Discrepancy     int       `json:"discrepancy"`
	Reason          string    `json:"reason,omitempty"`
	Adjusted        bool      `json:"adjusted"`
	CountedBy       string    `json:"counted_by"`
	CountedAt       time.Time `json:"counted_at"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Record(r.Context(), req.ProductID, req.CountedQuantity, req.Reason, actor(r))
	if err != nil {
		switch {
		case errors.Is(err, cyclecount.ErrInvalidCount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, product.ErrNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := cyclecount.ListFilter{}

	if s := r.URL.Query().Get("product_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid product_id", http.StatusBadRequest)
			return
		}

		filter.ProductID = &id
	}

	counts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]countResponse, len(counts))
	for i, c := range counts {
		resp[i] = toResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(c *cyclecount.CycleCount) countResponse {
	return countResponse{
		ID:              c.ID,
		ProductID:       c.ProductID,
		CountedQuantity: c.CountedQuantity,
		SystemQuantity:  c.SystemQuantity,
		Discrepancy:     c.Discrepancy,
		Reason:          c.Reason,
		Adjusted:        c.Adjusted,
		CountedBy:       c.CountedBy,
		CountedAt:       c.CountedAt,
	}
}
