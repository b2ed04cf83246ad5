package service

import (
	"context"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// TransactionStore is the transaction log. Implemented by repository.TransactionRepository
// (SQLite) and repository.JSONTransactionSource (read-only mock data).
type TransactionStore interface {
	// ListTransactions returns the whole log in replay order.
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, id string) (model.Transaction, error)
	InsertTransaction(ctx context.Context, t model.Transaction) error
}

// QuoteLookup resolves tickers to quote results. Implemented by quote.Adapter.
type QuoteLookup interface {
	Lookup(ctx context.Context, ticker string) model.QuoteResult
	LookupAll(ctx context.Context, tickers []string) map[string]model.QuoteResult
}

// TickerResolver maps an asset name to a ticker, or "" when unknown. Implemented by quote.Resolver.
type TickerResolver interface {
	Resolve(asset string) string
}

// NewsSource fetches market headlines. Implemented by finnhub.Client.
type NewsSource interface {
	GeneralNews(ctx context.Context) ([]model.NewsItem, error)
}

// SettingStore persists key/value settings. Implemented by repository.SettingRepository.
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}
