package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	reportapp "github.com/retailops/backend/internal/application/report"
	"github.com/retailops/backend/internal/infrastructure/cache"
	"github.com/retailops/backend/internal/infrastructure/config"
	"github.com/retailops/backend/internal/infrastructure/dispatch"
	"github.com/retailops/backend/internal/infrastructure/logger"
	"github.com/retailops/backend/internal/infrastructure/persistence"
	"github.com/retailops/backend/internal/infrastructure/persistence/models"
	"github.com/retailops/backend/internal/interfaces/http/handler"
	"github.com/retailops/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.DB.AutoMigrate(&models.ReportModel{}); err != nil {
		log.Fatal("failed to migrate report schema", zap.Error(err))
	}

	pool := dispatch.NewWorkerPool(dispatch.Config{
		Workers:   cfg.Dispatcher.Workers,
		QueueSize: cfg.Dispatcher.QueueSize,
	}, log.Named("dispatch"))
	if err := pool.Start(context.Background()); err != nil {
		log.Fatal("failed to start dispatcher", zap.Error(err))
	}

	reportService := reportapp.NewReportService(
		persistence.NewGormReportRepository(db.DB),
		persistence.NewGormOrderAnalyticsRepository(db.DB),
		persistence.NewGormUserAnalyticsRepository(db.DB),
		persistence.NewGormPaymentAnalyticsRepository(db.DB),
		persistence.NewGormProductAnalyticsRepository(db.DB),
		cache.NewReportResultCache(cfg.Cache.Capacity),
		pool,
		log.Named("report"),
	)

	engine := router.Setup(log.Named("http"), handler.NewReportHandler(reportService))

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := pool.Stop(ctx); err != nil {
		log.Error("dispatcher shutdown failed", zap.Error(err))
	}
}
