package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rgoodman/depot/internal/http/auditlog"
	"github.com/rgoodman/depot/internal/http/cyclecount"
	"github.com/rgoodman/depot/internal/http/forecast"
	"github.com/rgoodman/depot/internal/http/ingest"
	"github.com/rgoodman/depot/internal/http/movement"
	"github.com/rgoodman/depot/internal/http/product"
	"github.com/rgoodman/depot/internal/http/report"

	m "github.com/rgoodman/depot/internal/movement"
)

func New(
	productsV1 *product.Handler,
	movementsV1 *movement.Handler,
	cycleCountsV1 *cyclecount.Handler,
	importsV1 *ingest.Handler,
	reportsV1 *report.Handler,
	forecastV1 *forecast.Handler,
	auditV1 *auditlog.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Actor"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			productsV1.Routes(r)
		})

		r.Route("/movements", func(r chi.Router) {
			r.Route("/inbound", movementsV1.KindRoutes(m.KindInbound))
			r.Route("/outbound", movementsV1.KindRoutes(m.KindOutbound))
			movementsV1.Routes(r)
		})

		r.Route("/cycle-counts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			cycleCountsV1.Routes(r)
		})

		r.Route("/imports", importsV1.Routes)

		r.Route("/reports", reportsV1.Routes)
		r.Route("/forecast", forecastV1.Routes)
		r.Route("/audit", auditV1.Routes)
	})

	return router
}
