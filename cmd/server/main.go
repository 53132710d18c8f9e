package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/scheduler"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/server/router"
	inventorysvc "github.com/mamadbah2/stockroom/internal/service/inventory"
	issuancesvc "github.com/mamadbah2/stockroom/internal/service/issuance"
	reportingsvc "github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/pkg/clients/alert"
	"github.com/mamadbah2/stockroom/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.Store
	if cfg.MongoDB.URI != "" {
		mongoStore, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoStore
	} else {
		baseLogger.Warn("MONGODB_URI not set, using in-memory store")
		store = memory.New()
	}

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("export.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled")
	}

	inventorySvc := inventorysvc.NewService(store, cfg.Inventory.Mode, cfg.Inventory.LowStockThreshold, baseLogger.Named("svc.inventory"))
	issuanceSvc := issuancesvc.NewService(store, inventorySvc, exporter, cfg.Inventory.Mode, baseLogger.Named("svc.issuance"))
	reportingSvc := reportingsvc.NewService(store, cfg.Inventory.LowStockThreshold, baseLogger.Named("svc.reporting"))

	var alertClient alert.Client
	if cfg.AlertsEnabled() {
		alertClient = alert.NewClient(cfg.Alerts)
		baseLogger.Info("alert webhook enabled")
	}

	inventoryHandler := handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory"))
	issuanceHandler := handlers.NewIssuanceHandler(issuanceSvc, baseLogger.Named("handlers.issuance"))
	reportHandler := handlers.NewReportHandler(reportingSvc)
	engine := router.New(inventoryHandler, issuanceHandler, reportHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, alertClient, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("mode", string(cfg.Inventory.Mode)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
