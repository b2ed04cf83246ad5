// Package di wires repositories, clients and services from the configuration.
package di

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/finnhub"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/quote"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/yahoo"
)

// Container holds all dependencies for the application
type Container struct {
	DB     *sql.DB
	Store  service.TransactionStore
	Quotes *quote.Adapter

	System      *service.SystemService
	Transaction *service.TransactionService
	Portfolio   *service.PortfolioService
	Rebalancing *service.RebalancingService
	News        *service.NewsService
}

// Build opens the database, applies migrations and wires every service.
// The caller must Close the container.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Info().Str("path", cfg.Database.Path).Int64("schema_version", applied).Msg("Database ready")

	c := &Container{DB: db}

	store, err := newTransactionStore(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	c.Store = store
	log.Info().Str("source", cfg.Source.Kind).Msg("Transaction source selected")

	c.System = service.NewSystemService(db, repository.NewSettingRepository(db),
		cfg.Security.EncryptionKey, cfg.Finnhub.APIKey, features(cfg))

	finnhubClient := finnhub.NewClient(cfg.Finnhub.BaseURL, cfg.Quote.LookupTimeout, c.System.FinnhubToken)

	sources, err := newQuoteSources(cfg, finnhubClient)
	if err != nil {
		db.Close()
		return nil, err
	}
	c.Quotes = quote.NewAdapter(sources, quote.Options{
		CacheTTL:      cfg.Quote.CacheTTL,
		LookupTimeout: cfg.Quote.LookupTimeout,
	}, log)
	log.Info().Strs("providers", c.Quotes.SourceNames()).Dur("cache_ttl", cfg.Quote.CacheTTL).Msg("Quote providers configured")

	c.Portfolio = service.NewPortfolioService(store, c.Quotes, quote.NewResolver(cfg.Quote.SymbolMap),
		valuation.NewTargetBook(), log)
	c.Transaction = service.NewTransactionService(store, c.Portfolio, cfg.Currency)
	c.Rebalancing = service.NewRebalancingService(c.Portfolio)
	c.News = service.NewNewsService(finnhubClient, log)

	return c, nil
}

// Close releases the database connection.
func (c *Container) Close() error {
	return c.DB.Close()
}

func newTransactionStore(cfg *config.Config, db *sql.DB) (service.TransactionStore, error) {
	switch cfg.Source.Kind {
	case config.SourceJSON:
		return repository.NewJSONTransactionSource(cfg.Source.MockDataPath, cfg.Source.JSONPath)
	case config.SourceSQLite, "":
		return repository.NewTransactionRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown transaction source %q", cfg.Source.Kind)
	}
}

func newQuoteSources(cfg *config.Config, finnhubClient *finnhub.Client) ([]quote.Source, error) {
	sources := make([]quote.Source, 0, len(cfg.Quote.Providers))
	for _, name := range cfg.Quote.Providers {
		switch name {
		case yahoo.SourceName:
			sources = append(sources, yahoo.NewFinanceClient(cfg.Yahoo.BaseURL, cfg.Quote.LookupTimeout))
		case finnhub.SourceName:
			sources = append(sources, finnhubClient)
		default:
			return nil, fmt.Errorf("unknown quote provider %q in QUOTE_PROVIDERS", name)
		}
	}
	return sources, nil
}

func features(cfg *config.Config) map[string]bool {
	return map[string]bool{
		"finnhub_env_key":        cfg.Finnhub.APIKey != "",
		"encrypted_provider_key": cfg.Security.EncryptionKey != "",
		"writable_transactions":  cfg.Source.Kind != config.SourceJSON,
	}
}
