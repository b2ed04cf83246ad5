package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// DerivePortfolioView runs the whole pipeline: replay the log, merge quotes, aggregate, merge
// target weights and plan the rebalance. quotes is keyed by ticker, targets by asset.
//
// The returned view has no LogVersion or GeneratedAt; those belong to the caller.
func DerivePortfolioView(
	transactions []model.Transaction,
	targets map[string]decimal.Decimal,
	quotes map[string]model.QuoteResult,
) model.PortfolioView {
	ledger := Replay(transactions)
	valued := ValueAll(ledger.Positions, quotes)
	summary := Summarize(ledger.Cash, ledger.RealizedPnL, valued)
	merged := MergeTargets(CurrentWeights(summary, valued), targets)

	return model.PortfolioView{
		Positions:   valued,
		Summary:     summary,
		Allocation:  Allocation(summary, valued),
		Targets:     merged,
		Suggestions: Plan(merged, summary.TotalValue, LivePrices(valued)),
	}
}
