package valuation

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// MergeTargets overlays previously stored target weights onto freshly computed current weights.
// The result follows the order of current. Assets without a stored target keep the target
// CurrentWeights initialized, which equals their current weight.
func MergeTargets(current []model.TargetAllocation, stored map[string]decimal.Decimal) []model.TargetAllocation {
	merged := make([]model.TargetAllocation, len(current))
	for i, c := range current {
		merged[i] = c
		if t, ok := stored[c.Asset]; ok {
			merged[i].Target = t
		}
	}
	return merged
}

// LivePrices returns the live price of every valued position that has a ready quote, keyed by asset.
func LivePrices(valued []model.ValuedPosition) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(valued))
	for _, v := range valued {
		if v.LivePrice {
			prices[v.Asset] = v.CurrentPrice
		}
	}
	return prices
}

// TargetBook holds the user's target weights between derivations. It is the only
// mutable state of the rebalancing flow and lives in memory only.
//
// An asset's target is recorded the first time Reconcile sees it, at its current weight.
// Targets of assets that leave the portfolio are kept, so a position that is closed and
// reopened gets its old target back.
type TargetBook struct {
	mu      sync.Mutex
	targets map[string]decimal.Decimal
	current map[string]decimal.Decimal // Current weights seen by the last Reconcile
}

// NewTargetBook returns an empty TargetBook.
func NewTargetBook() *TargetBook {
	return &TargetBook{
		targets: make(map[string]decimal.Decimal),
		current: make(map[string]decimal.Decimal),
	}
}

// Targets returns a copy of the stored target weights keyed by asset.
func (b *TargetBook) Targets() map[string]decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]decimal.Decimal, len(b.targets))
	for asset, t := range b.targets {
		out[asset] = t
	}
	return out
}

// Reconcile overlays the stored targets onto freshly computed weights, records a target for
// every asset seen for the first time, and remembers the current weights for Set and Reset.
func (b *TargetBook) Reconcile(current []model.TargetAllocation) []model.TargetAllocation {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = make(map[string]decimal.Decimal, len(current))
	for _, c := range current {
		b.current[c.Asset] = c.Current
		if _, ok := b.targets[c.Asset]; !ok {
			b.targets[c.Asset] = c.Target
		}
	}
	return MergeTargets(current, b.targets)
}

// Set stores the target weight of an asset. The asset must be part of the last reconciled
// view and the target must lie within 0..100.
func (b *TargetBook) Set(asset string, target decimal.Decimal) error {
	if target.IsNegative() || target.GreaterThan(hundred) {
		return fmt.Errorf("%w: got %s", apperrors.ErrInvalidTarget, target.String())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.current[asset]; !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrAssetNotFound, asset)
	}
	b.targets[asset] = target
	return nil
}

// Reset sets the target of every asset in the last reconciled view back to its current weight.
func (b *TargetBook) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for asset, w := range b.current {
		b.targets[asset] = w
	}
}
