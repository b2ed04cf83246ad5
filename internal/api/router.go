package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// Services groups the services the HTTP API is built on.
type Services struct {
	System      *service.SystemService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Rebalancing *service.RebalancingService
	News        *service.NewsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Put("/provider/{provider}", systemHandler.SetProviderKey)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svcs.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio)
			r.Get("/view", portfolioHandler.View)
			r.Get("/holdings", portfolioHandler.Holdings)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/allocation", portfolioHandler.Allocation)
		})

		r.Route("/rebalancing", func(r chi.Router) {
			rebalancingHandler := handlers.NewRebalancingHandler(svcs.Rebalancing)
			r.Get("/targets", rebalancingHandler.Targets)
			r.Post("/targets/reset", rebalancingHandler.ResetTargets)
			r.Put("/targets/{asset}", rebalancingHandler.SetTarget)
			r.Get("/suggestions", rebalancingHandler.Suggestions)
		})

		marketHandler := handlers.NewMarketHandler(svcs.Portfolio, svcs.News)
		r.With(custommiddleware.ValidateTickerMiddleware).Get("/quote/{ticker}", marketHandler.Quote)
		r.Get("/news", marketHandler.News)
	})

	return r
}
