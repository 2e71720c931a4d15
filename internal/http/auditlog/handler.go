package auditlog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/audit"
)

// defaultLimit bounds the unfiltered trail view.
const defaultLimit = 50

// Log is the read side of the audit trail. Entries are append-only;
// nothing here mutates.
type Log interface {
	Recent(ctx context.Context, n int) ([]*audit.Entry, error)
	ByProduct(ctx context.Context, productID uuid.UUID) ([]*audit.Entry, error)
}

type Handler struct {
	log Log
}

func NewHandler(log Log) *Handler {
	return &Handler{log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type entryResponse struct {
	ID          uuid.UUID    `json:"id"`
	ProductID   uuid.UUID    `json:"product_id"`
	ProductName string       `json:"product_name"`
	Action      audit.Action `json:"action"`
	PerformedBy string       `json:"performed_by"`
	Timestamp   time.Time    `json:"timestamp"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		entries []*audit.Entry
		err     error
	)

	if s := r.URL.Query().Get("product_id"); s != "" {
		id, parseErr := uuid.Parse(s)
		if parseErr != nil {
			http.Error(w, "invalid product_id", http.StatusBadRequest)
			return
		}

		entries, err = h.log.ByProduct(r.Context(), id)
	} else {
		limit := defaultLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, convErr := strconv.Atoi(s); convErr == nil && n > 0 {
				limit = n
			}
		}

		entries, err = h.log.Recent(r.Context(), limit)
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			ID:          e.ID,
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Action:      e.Action,
			PerformedBy: e.PerformedBy,
			Timestamp:   e.Timestamp,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
