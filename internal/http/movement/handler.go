package movement

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/movement"
	"github.com/rgoodman/depot/internal/product"
)

type Handler struct {
	svc *movement.Service
}

func NewHandler(svc *movement.Service) *Handler {
	return &Handler{svc: svc}
}

// KindRoutes mounts create and list for one fixed direction, so inbound
// and outbound get their own top-level resources.
func (h *Handler) KindRoutes(kind movement.Kind) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", h.create(kind))
		r.Get("/", h.list(kind))
	}
}

// Routes mounts the kind-agnostic operations on single movements.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func actor(r *http.Request) string {
	if a := r.Header.Get("X-Actor"); a != "" {
		return a
	}

	return "system"
}

type createMovementRequest struct {
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Party      string    `json:"party"`
	Reference  string    `json:"reference"`
	OccurredOn time.Time `json:"occurred_on"`
}

func (h *Handler) create(kind movement.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMovementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m, err := h.svc.Create(r.Context(), movement.CreateParams{
			ProductID:  req.ProductID,
			Kind:       kind,
			Quantity:   req.Quantity,
			Party:      req.Party,
			Reference:  req.Reference,
			OccurredOn: req.OccurredOn,
		}, actor(r))
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

func (h *Handler) list(kind movement.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := movement.ListFilter{Kind: &kind}

		if s := r.URL.Query().Get("product_id"); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				http.Error(w, "invalid product_id", http.StatusBadRequest)
				return
			}

			filter.ProductID = &id
		}

		movements, err := h.svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(toResponseList(movements)); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateMovementRequest struct {
	ProductID  *uuid.UUID `json:"product_id,omitempty"`
	Quantity   *int       `json:"quantity,omitempty"`
	Party      *string    `json:"party,omitempty"`
	Reference  *string    `json:"reference,omitempty"`
	OccurredOn *time.Time `json:"occurred_on,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Update(r.Context(), id, movement.UpdateParams{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		Party:      req.Party,
		Reference:  req.Reference,
		OccurredOn: req.OccurredOn,
	}, actor(r))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id, actor(r)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, movement.ErrNotFound):
		http.Error(w, "movement not found", http.StatusNotFound)
	case errors.Is(err, product.ErrNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, movement.ErrInsufficientStock):
		http.Error(w, "insufficient stock", http.StatusConflict)
	case errors.Is(err, movement.ErrInvalidQuantity), errors.Is(err, movement.ErrInvalidKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
