package testutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// ErrMockUnknownTicker is returned by MockQuoteSource for tickers without a configured price.
var ErrMockUnknownTicker = errors.New("mock: unknown ticker")

// MockQuoteSource is a quote.Source returning predefined prices instead of calling a provider.
type MockQuoteSource struct {
	SourceName string
	// Prices maps ticker to price; DayChange maps ticker to day change percent
	Prices    map[string]string
	DayChange map[string]string
	// MockError is returned for every ticker when set
	MockError error
	// QueryCount tracks how many times Quote was called
	QueryCount atomic.Int32
}

// NewMockQuoteSource creates a MockQuoteSource named "mock" with no prices.
func NewMockQuoteSource() *MockQuoteSource {
	return &MockQuoteSource{
		SourceName: "mock",
		Prices:     make(map[string]string),
		DayChange:  make(map[string]string),
	}
}

// WithPrice configures the price and day change percent of ticker.
func (m *MockQuoteSource) WithPrice(ticker, price, dayChange string) *MockQuoteSource {
	m.Prices[ticker] = price
	m.DayChange[ticker] = dayChange
	return m
}

// WithError configures the mock to fail every lookup with err.
func (m *MockQuoteSource) WithError(err error) *MockQuoteSource {
	m.MockError = err
	return m
}

// Name implements quote.Source.
func (m *MockQuoteSource) Name() string {
	return m.SourceName
}

// Quote implements quote.Source.
func (m *MockQuoteSource) Quote(_ context.Context, ticker string) (model.QuoteResult, error) {
	m.QueryCount.Add(1)
	if m.MockError != nil {
		return model.QuoteResult{}, m.MockError
	}
	price, ok := m.Prices[ticker]
	if !ok {
		return model.QuoteResult{}, ErrMockUnknownTicker
	}
	dp := decimal.Zero
	if s, ok := m.DayChange[ticker]; ok && s != "" {
		dp = decimal.RequireFromString(s)
	}
	return model.QuoteResult{
		Ticker:           ticker,
		Price:            decimal.RequireFromString(price),
		DayChangePercent: dp,
		Source:           m.SourceName,
	}, nil
}

// MockQuoteLookup is a service.QuoteLookup with fixed results.
type MockQuoteLookup struct {
	mu      sync.Mutex
	results map[string]model.QuoteResult

	Calls atomic.Int32
}

// NewMockQuoteLookup creates a MockQuoteLookup. Unknown tickers resolve to failed.
func NewMockQuoteLookup() *MockQuoteLookup {
	return &MockQuoteLookup{results: make(map[string]model.QuoteResult)}
}

// WithReady configures a ready quote for ticker.
func (m *MockQuoteLookup) WithReady(ticker, price, dayChange string) *MockQuoteLookup {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[ticker] = model.QuoteResult{
		Ticker:           ticker,
		Status:           model.QuoteReady,
		Price:            decimal.RequireFromString(price),
		DayChangePercent: decimal.RequireFromString(dayChange),
		Source:           "mock",
	}
	return m
}

// Lookup implements service.QuoteLookup.
func (m *MockQuoteLookup) Lookup(_ context.Context, ticker string) model.QuoteResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok := m.results[ticker]; ok {
		return q
	}
	return model.QuoteResult{Ticker: ticker, Status: model.QuoteFailed}
}

// LookupAll implements service.QuoteLookup.
func (m *MockQuoteLookup) LookupAll(ctx context.Context, tickers []string) map[string]model.QuoteResult {
	m.Calls.Add(1)
	out := make(map[string]model.QuoteResult, len(tickers))
	for _, t := range tickers {
		out[t] = m.Lookup(ctx, t)
	}
	return out
}

// MockNewsSource is a service.NewsSource with fixed headlines.
type MockNewsSource struct {
	Items      []model.NewsItem
	MockError  error
	QueryCount atomic.Int32
}

// GeneralNews implements service.NewsSource.
func (m *MockNewsSource) GeneralNews(_ context.Context) ([]model.NewsItem, error) {
	m.QueryCount.Add(1)
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.Items, nil
}
