package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rgoodman/depot/internal/audit"
	"github.com/rgoodman/depot/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/daily-volume", h.dailyVolume)
}

type auditEntryResponse struct {
	ID          uuid.UUID    `json:"id"`
	ProductID   uuid.UUID    `json:"product_id"`
	ProductName string       `json:"product_name"`
	Action      audit.Action `json:"action"`
	PerformedBy string       `json:"performed_by"`
	Timestamp   time.Time    `json:"timestamp"`
}

type summaryResponse struct {
	TotalProducts  int                  `json:"total_products"`
	InboundToday   int                  `json:"inbound_today"`
	OutboundToday  int                  `json:"outbound_today"`
	LowStockAlerts int                  `json:"low_stock_alerts"`
	RecentActivity []auditEntryResponse `json:"recent_activity"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		TotalProducts:  s.TotalProducts,
		InboundToday:   s.InboundToday,
		OutboundToday:  s.OutboundToday,
		LowStockAlerts: s.LowStockAlerts,
		RecentActivity: toAuditResponses(s.RecentActivity),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type dayTotalResponse struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

type volumeResponse struct {
	Inbound  []dayTotalResponse `json:"inbound"`
	Outbound []dayTotalResponse `json:"outbound"`
}

func (h *Handler) dailyVolume(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.DailyVolume(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := volumeResponse{
		Inbound:  toDayTotals(v.Inbound),
		Outbound: toDayTotals(v.Outbound),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toDayTotals(totals []report.DayTotal) []dayTotalResponse {
	resp := make([]dayTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = dayTotalResponse{Date: t.Date.Format(time.DateOnly), Total: t.Total}
	}

	return resp
}

func toAuditResponses(entries []*audit.Entry) []auditEntryResponse {
	resp := make([]auditEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = auditEntryResponse{
			ID:          e.ID,
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Action:      e.Action,
			PerformedBy: e.PerformedBy,
			Timestamp:   e.Timestamp,
		}
	}

	return resp
}
