// Package quote resolves tickers to live prices through an ordered chain of
// market data sources.
package quote

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// Source is one market data provider.
type Source interface {
	Name() string
	// Quote returns the latest price and day change of ticker. The status field is ignored.
	Quote(ctx context.Context, ticker string) (model.QuoteResult, error)
}

// Options tunes the Adapter.
type Options struct {
	CacheTTL      time.Duration // How long a ready quote is served without refetching
	LookupTimeout time.Duration // Upper bound of one provider round trip
}

// Adapter looks up quotes with a per-ticker TTL cache. It never returns an error:
// every failure is folded into the status of the result.
//
//   - empty ticker: failed, no I/O
//   - every source errors: failed, logged
//   - the caller's context ends first: pending
//
// Concurrent lookups of the same ticker share one provider round trip. A fetch that
// outlives its caller still completes and fills the cache for the next lookup.
type Adapter struct {
	sources []Source
	opts    Options
	log     zerolog.Logger
	now     func() time.Time

	mu    sync.RWMutex
	cache map[string]model.QuoteResult
	group singleflight.Group
}

// NewAdapter creates an Adapter that tries sources in order until one succeeds.
func NewAdapter(sources []Source, opts Options, log zerolog.Logger) *Adapter {
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = 5 * time.Second
	}
	return &Adapter{
		sources: sources,
		opts:    opts,
		log:     log.With().Str("component", "quote").Logger(),
		now:     time.Now,
		cache:   make(map[string]model.QuoteResult),
	}
}

// SourceNames lists the configured sources in lookup order.
func (a *Adapter) SourceNames() []string {
	names := make([]string, len(a.sources))
	for i, s := range a.sources {
		names[i] = s.Name()
	}
	return names
}

// Lookup returns the quote of ticker, from cache when still fresh.
func (a *Adapter) Lookup(ctx context.Context, ticker string) model.QuoteResult {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return model.QuoteResult{Status: model.QuoteFailed}
	}

	if q, ok := a.cached(ticker); ok {
		return q
	}

	ch := a.group.DoChan(ticker, func() (any, error) {
		// Detached from the caller so a pending lookup still warms the cache.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.opts.LookupTimeout)
		defer cancel()
		return a.fetch(fetchCtx, ticker), nil
	})

	select {
	case res := <-ch:
		return res.Val.(model.QuoteResult)
	case <-ctx.Done():
		return model.QuoteResult{Ticker: ticker, Status: model.QuotePending}
	}
}

// LookupAll looks up every distinct ticker in parallel and returns the results keyed by ticker.
// A slow or failing ticker never affects the others.
func (a *Adapter) LookupAll(ctx context.Context, tickers []string) map[string]model.QuoteResult {
	ctx, cancel := context.WithTimeout(ctx, a.opts.LookupTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]model.QuoteResult, len(tickers))
		g       errgroup.Group
	)
	seen := make(map[string]bool, len(tickers))
	for _, ticker := range tickers {
		if seen[ticker] {
			continue
		}
		seen[ticker] = true

		g.Go(func() error {
			q := a.Lookup(ctx, ticker)
			mu.Lock()
			results[ticker] = q
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Cached returns the cached quote of ticker regardless of its age.
func (a *Adapter) Cached(ticker string) (model.QuoteResult, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	q, ok := a.cache[ticker]
	return q, ok
}

func (a *Adapter) cached(ticker string) (model.QuoteResult, bool) {
	q, ok := a.Cached(ticker)
	if !ok || a.now().Sub(q.FetchedAt) >= a.opts.CacheTTL {
		return model.QuoteResult{}, false
	}
	return q, true
}

func (a *Adapter) fetch(ctx context.Context, ticker string) model.QuoteResult {
	for _, s := range a.sources {
		q, err := s.Quote(ctx, ticker)
		if err == nil {
			q.Ticker = ticker
			q.Status = model.QuoteReady
			q.Source = s.Name()
			q.FetchedAt = a.now()

			a.mu.Lock()
			a.cache[ticker] = q
			a.mu.Unlock()

			a.log.Debug().Str("ticker", ticker).Str("source", s.Name()).Str("price", q.Price.String()).Msg("Quote fetched")
			return q
		}

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			a.log.Warn().Str("ticker", ticker).Str("source", s.Name()).Msg("Quote lookup timed out")
			return model.QuoteResult{Ticker: ticker, Status: model.QuotePending}
		}
		a.log.Warn().Err(err).Str("ticker", ticker).Str("source", s.Name()).Msg("Quote lookup failed")
	}
	return model.QuoteResult{Ticker: ticker, Status: model.QuoteFailed}
}
