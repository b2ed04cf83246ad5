package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/quote"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// TestEncryptionKey is a valid base64 fernet key for tests.
const TestEncryptionKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

// Services bundles the services wired against one test database.
type Services struct {
	Portfolio   *service.PortfolioService
	Transaction *service.TransactionService
	Rebalancing *service.RebalancingService
	News        *service.NewsService
	System      *service.SystemService
	Quotes      *MockQuoteLookup
	NewsSource  *MockNewsSource
}

// NewTestPortfolioService creates a PortfolioService over the SQLite transaction
// repository, pricing through quotes.
func NewTestPortfolioService(t *testing.T, db *sql.DB, quotes service.QuoteLookup) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewTransactionRepository(db),
		quotes,
		quote.NewResolver(nil),
		valuation.NewTargetBook(),
		zerolog.Nop(),
	)
}

// NewTestTransactionService creates a TransactionService that notifies portfolio.
// portfolio may be nil.
func NewTestTransactionService(t *testing.T, db *sql.DB, portfolio *service.PortfolioService) *service.TransactionService {
	t.Helper()

	var notifier service.ChangeNotifier
	if portfolio != nil {
		notifier = portfolio
	}
	return service.NewTransactionService(repository.NewTransactionRepository(db), notifier, "USD")
}

// NewTestSystemService creates a SystemService with TestEncryptionKey and no environment key.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, repository.NewSettingRepository(db), TestEncryptionKey, "",
		map[string]bool{"finnhub": true})
}

// NewTestServices wires every service against db with mock quotes and news.
func NewTestServices(t *testing.T, db *sql.DB) *Services {
	t.Helper()

	quotes := NewMockQuoteLookup()
	news := &MockNewsSource{}
	portfolio := NewTestPortfolioService(t, db, quotes)

	return &Services{
		Portfolio:   portfolio,
		Transaction: NewTestTransactionService(t, db, portfolio),
		Rebalancing: service.NewRebalancingService(portfolio),
		News:        service.NewNewsService(news, zerolog.Nop()),
		System:      NewTestSystemService(t, db),
		Quotes:      quotes,
		NewsSource:  news,
	}
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
