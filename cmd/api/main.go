package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	auditStore "github.com/rgoodman/depot/internal/audit/store"
	"github.com/rgoodman/depot/internal/config"
	"github.com/rgoodman/depot/internal/cyclecount"
	countStore "github.com/rgoodman/depot/internal/cyclecount/store"
	"github.com/rgoodman/depot/internal/database"
	"github.com/rgoodman/depot/internal/forecast"
	forecastStore "github.com/rgoodman/depot/internal/forecast/store"
	depotHttp "github.com/rgoodman/depot/internal/http"
	auditHandler "github.com/rgoodman/depot/internal/http/auditlog"
	countHandler "github.com/rgoodman/depot/internal/http/cyclecount"
	forecastHandler "github.com/rgoodman/depot/internal/http/forecast"
	ingestHandler "github.com/rgoodman/depot/internal/http/ingest"
	movementHandler "github.com/rgoodman/depot/internal/http/movement"
	productHandler "github.com/rgoodman/depot/internal/http/product"
	reportHandler "github.com/rgoodman/depot/internal/http/report"
	"github.com/rgoodman/depot/internal/ingest"
	"github.com/rgoodman/depot/internal/movement"
	movementStore "github.com/rgoodman/depot/internal/movement/store"
	"github.com/rgoodman/depot/internal/product"
	productStore "github.com/rgoodman/depot/internal/product/store"
	"github.com/rgoodman/depot/internal/report"
	reportStore "github.com/rgoodman/depot/internal/report/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		productService  = product.NewService(productStore.New(db))
		movementService = movement.NewService(movementStore.New(db))
		countService    = cyclecount.NewService(countStore.New(db))
		ingestService   = ingest.NewService(productService, movementService)
		reportService   = report.NewService(reportStore.New(db), nil)
		forecastService = forecast.NewService(forecastStore.New(db))
	)

	var (
		productH  = productHandler.NewHandler(productService)
		movementH = movementHandler.NewHandler(movementService)
		countH    = countHandler.NewHandler(countService)
		importH   = ingestHandler.NewHandler(ingestService)
		reportH   = reportHandler.NewHandler(reportService)
		forecastH = forecastHandler.NewHandler(forecastService)
		auditH    = auditHandler.NewHandler(auditStore.New(db))
	)

	router := depotHttp.New(productH, movementH, countH, importH, reportH, forecastH, auditH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
