package forecast

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rgoodman/depot/internal/forecast"
	"github.com/rgoodman/depot/internal/product"
)

type Handler struct {
	svc *forecast.Service
}

func NewHandler(svc *forecast.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{sku}", h.forecast)
}

type forecastResponse struct {
	SKU          string          `json:"sku"`
	Product      string          `json:"product"`
	Stock        int             `json:"stock"`
	DailyAverage decimal.Decimal `json:"daily_average"`
	DaysLeft     *int            `json:"days_left,omitempty"`
	Unbounded    bool            `json:"unbounded"`
}

func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Forecast(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, forecast.ErrNoHistory):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	resp := forecastResponse{
		SKU:          result.SKU,
		Product:      result.Product,
		Stock:        result.Stock,
		DailyAverage: result.DailyAverage,
		Unbounded:    result.Unbounded,
	}

	// A product with no recent usage has no finite runway; omit the number
	// rather than report zero days.
	if !result.Unbounded {
		resp.DaysLeft = &result.DaysLeft
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
