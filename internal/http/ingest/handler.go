package ingest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rgoodman/depot/internal/ingest"
	"github.com/rgoodman/depot/internal/movement"
)

// maxUploadSize caps CSV uploads at 10 MiB.
const maxUploadSize = 10 << 20

type Handler struct {
	svc *ingest.Service
}

func NewHandler(svc *ingest.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/products", h.products)
	r.Post("/inbound", h.movements(movement.KindInbound))
	r.Post("/outbound", h.movements(movement.KindOutbound))
}

func actor(r *http.Request) string {
	if a := r.Header.Get("X-Actor"); a != "" {
		return a
	}

	return "system"
}

type skipResponse struct {
	Line   int    `json:"line"`
	SKU    string `json:"sku,omitempty"`
	Reason string `json:"reason"`
}

type reportResponse struct {
	Applied int            `json:"applied"`
	Skipped []skipResponse `json:"skipped"`
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	file, ok := uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	report, err := h.svc.Products(r.Context(), file, actor(r))
	if err != nil {
		writeIngestError(w, err)
		return
	}

	writeReport(w, report)
}

func (h *Handler) movements(kind movement.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, ok := uploadedFile(w, r)
		if !ok {
			return
		}
		defer file.Close()

		report, err := h.svc.Movements(r.Context(), file, kind, actor(r))
		if err != nil {
			writeIngestError(w, err)
			return
		}

		writeReport(w, report)
	}
}

func uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return nil, false
	}

	return file, true
}

func writeIngestError(w http.ResponseWriter, err error) {
	if errors.Is(err, ingest.ErrBadHeader) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeReport(w http.ResponseWriter, report *ingest.Report) {
	resp := reportResponse{
		Applied: report.Applied,
		Skipped: make([]skipResponse, 0, len(report.Skipped)),
	}
	for _, s := range report.Skipped {
		resp.Skipped = append(resp.Skipped, skipResponse{Line: s.Line, SKU: s.SKU, Reason: s.Reason})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
