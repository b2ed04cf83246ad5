package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// snapshot holds the inputs of a derivation: the transaction log at a known version and the
// quotes fetched for it. The view itself is re-derived on every read so that target changes
// are visible immediately.
type snapshot struct {
	version      uint64
	transactions []model.Transaction
	quotes       map[string]model.QuoteResult
	fetchedAt    time.Time
}

// PortfolioService derives the portfolio view from the transaction log and live quotes.
//
// It keeps the last published snapshot of transactions and quotes. Every change to the log
// bumps a version counter; a refresh that started on an older version is discarded instead
// of published, so a slow quote fetch can never overwrite the effect of a newer transaction.
type PortfolioService struct {
	store    TransactionStore
	quotes   QuoteLookup
	resolver TickerResolver
	targets  *valuation.TargetBook
	log      zerolog.Logger

	version atomic.Uint64
	current atomic.Pointer[snapshot]
	changed chan struct{}
	now     func() time.Time
}

// NewPortfolioService creates a new PortfolioService.
// resolver may be nil, in which case only tickers recorded on transactions are priced.
func NewPortfolioService(
	store TransactionStore,
	quotes QuoteLookup,
	resolver TickerResolver,
	targets *valuation.TargetBook,
	log zerolog.Logger,
) *PortfolioService {
	if targets == nil {
		targets = valuation.NewTargetBook()
	}
	return &PortfolioService{
		store:    store,
		quotes:   quotes,
		resolver: resolver,
		targets:  targets,
		log:      log.With().Str("component", "portfolio").Logger(),
		changed:  make(chan struct{}, 1),
		now:      time.Now,
	}
}

// TargetBook returns the target weights shared with the rebalancing flow.
func (s *PortfolioService) TargetBook() *valuation.TargetBook {
	return s.targets
}

// LogVersion returns the current version of the transaction log.
func (s *PortfolioService) LogVersion() uint64 {
	return s.version.Load()
}

// LogChanged marks the published snapshot as outdated and wakes the background refresher.
// It never blocks.
func (s *PortfolioService) LogChanged() {
	s.version.Add(1)
	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// Refresh loads the transaction log, fetches quotes for every held ticker and publishes
// the result as the new snapshot.
//
// If the log changed while quotes were in flight the result is superseded: it is dropped
// and the previous snapshot stays in place.
func (s *PortfolioService) Refresh(ctx context.Context) error {
	_, err := s.refresh(ctx)
	return err
}

func (s *PortfolioService) refresh(ctx context.Context) (*snapshot, error) {
	version := s.version.Load()

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}
	txs = s.enrichTickers(txs)

	tickers := valuation.Tickers(valuation.Replay(txs).Positions)
	quotes := s.quotes.LookupAll(ctx, tickers)

	snap := &snapshot{
		version:      version,
		transactions: txs,
		quotes:       quotes,
		fetchedAt:    s.now(),
	}

	if s.version.Load() != version {
		s.log.Debug().
			Uint64("started_at_version", version).
			Uint64("current_version", s.version.Load()).
			Msg("discarding superseded portfolio refresh")
		return snap, nil
	}

	s.current.Store(snap)
	s.log.Debug().
		Uint64("version", version).
		Int("transactions", len(txs)).
		Int("tickers", len(tickers)).
		Msg("portfolio snapshot published")
	return snap, nil
}

// enrichTickers fills in the ticker of transactions that carry none, using the resolver.
// The input slice is not modified.
func (s *PortfolioService) enrichTickers(txs []model.Transaction) []model.Transaction {
	if s.resolver == nil {
		return txs
	}
	out := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		if tx.TickerRef == "" && !tx.Type.IsCashMovement() {
			tx.TickerRef = s.resolver.Resolve(tx.Asset)
		}
		out[i] = tx
	}
	return out
}

// Run refreshes the snapshot whenever LogChanged is called, until ctx is cancelled.
// Failures are logged; the next change or scheduled refresh tries again.
func (s *PortfolioService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.changed:
			if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				s.log.Error().Err(err).Msg("portfolio refresh failed")
			}
		}
	}
}

// View returns the full derived portfolio view.
//
// The published snapshot is used when it matches the current log version. Otherwise the
// view is derived synchronously from a fresh read of the log, so a read after a write
// always reflects that write.
//
// Monetary values are rounded to 2 decimals, quantities to 4 and percentages to 2.
func (s *PortfolioService) View(ctx context.Context) (model.PortfolioView, error) {
	snap := s.current.Load()
	if snap == nil || snap.version != s.version.Load() {
		fresh, err := s.refresh(ctx)
		if err != nil {
			return model.PortfolioView{}, err
		}
		snap = fresh
	}

	view := valuation.DerivePortfolioView(snap.transactions, s.targets.Targets(), snap.quotes)
	view.Targets = s.targets.Reconcile(view.Targets)
	view.LogVersion = snap.version
	view.GeneratedAt = s.now().UTC()

	return RoundView(view), nil
}

// Holdings returns every open position valued with the best available price.
func (s *PortfolioService) Holdings(ctx context.Context) ([]model.ValuedPosition, error) {
	view, err := s.View(ctx)
	if err != nil {
		return nil, err
	}
	return view.Positions, nil
}

// Summary returns the headline portfolio metrics.
func (s *PortfolioService) Summary(ctx context.Context) (model.PortfolioSummary, error) {
	view, err := s.View(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}
	return view.Summary, nil
}

// Allocation returns the asset allocation, cash first.
func (s *PortfolioService) Allocation(ctx context.Context) ([]model.AllocationSlice, error) {
	view, err := s.View(ctx)
	if err != nil {
		return nil, err
	}
	return view.Allocation, nil
}

// Quote looks up a single ticker through the configured providers.
func (s *PortfolioService) Quote(ctx context.Context, ticker string) model.QuoteResult {
	return s.quotes.Lookup(ctx, ticker)
}
