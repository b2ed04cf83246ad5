package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/di"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/scheduler"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logging.SetGlobalLogger(logger)

	// The dashboard expects numbers, not quoted decimals.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := di.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer container.Close()

	// Warm the snapshot and keep it current after writes
	if err := container.Portfolio.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial portfolio refresh failed")
	}
	go container.Portfolio.Run(ctx)

	sched := scheduler.New(logging.Component(logger, "scheduler"))
	if err := sched.AddJob(cfg.Quote.RefreshSchedule, scheduler.NewQuoteRefreshJob(container.Portfolio, cfg.Quote.LookupTimeout*2)); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Quote.RefreshSchedule).Msg("Invalid quote refresh schedule")
	}
	sched.Start()
	defer sched.Stop()

	router := api.NewRouter(api.Services{
		System:      container.System,
		Transaction: container.Transaction,
		Portfolio:   container.Portfolio,
		Rebalancing: container.Rebalancing,
		News:        container.News,
	}, cfg, logging.Component(logger, "http"))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("version", version.Version).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server failed")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
