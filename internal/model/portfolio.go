package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the derived holding of one asset, rebuilt from the transaction log.
// It is never persisted.
type Position struct {
	Asset     string          `json:"asset"`
	TickerRef string          `json:"ticker,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	TotalCost decimal.Decimal `json:"totalCost"` // Cost basis of the held quantity
}

// AverageCost returns the weighted average cost per held unit, or zero when nothing is held.
func (p Position) AverageCost() decimal.Decimal {
	if p.Quantity.IsZero() {
		return decimal.Zero
	}
	return p.TotalCost.Div(p.Quantity)
}

// ValuedPosition is a Position merged with the best available price.
// When no live quote is available CurrentPrice falls back to the average cost.
type ValuedPosition struct {
	Asset                string          `json:"asset"`
	TickerRef            string          `json:"ticker,omitempty"`
	Quantity             decimal.Decimal `json:"quantity"`
	AverageCost          decimal.Decimal `json:"averageCost"`
	CostBasis            decimal.Decimal `json:"costBasis"`
	CurrentPrice         decimal.Decimal `json:"currentPrice"`
	LivePrice            bool            `json:"livePrice"`
	QuoteStatus          QuoteStatus     `json:"quoteStatus"`
	MarketValue          decimal.Decimal `json:"marketValue"`
	UnrealizedPnL        decimal.Decimal `json:"unrealizedPnL"`
	UnrealizedPnLPercent decimal.Decimal `json:"unrealizedPnLPercent"`
	DayChangePercent     decimal.Decimal `json:"dayChangePercent"`
}

// PortfolioSummary holds the headline metrics of the dashboard.
type PortfolioSummary struct {
	Cash                decimal.Decimal `json:"cash"`
	HoldingsValue       decimal.Decimal `json:"holdingsValue"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	UnrealizedPnL       decimal.Decimal `json:"unrealizedPnL"`
	RealizedPnL         decimal.Decimal `json:"realizedPnL"`
	TodaysChange        decimal.Decimal `json:"todaysChange"`
	TodaysChangePercent decimal.Decimal `json:"todaysChangePercent"`
}

// AllocationSlice is one segment of the asset allocation chart, in percent of total value.
type AllocationSlice struct {
	Name   string          `json:"name"`
	Value  decimal.Decimal `json:"value"`
	IsCash bool            `json:"isCash,omitempty"`
}

// PortfolioView bundles every derived collection the dashboard consumes.
// LogVersion identifies the transaction log state the view was derived from.
type PortfolioView struct {
	Positions   []ValuedPosition        `json:"positions"`
	Summary     PortfolioSummary        `json:"summary"`
	Allocation  []AllocationSlice       `json:"allocation"`
	Targets     []TargetAllocation      `json:"targets"`
	Suggestions []RebalancingSuggestion `json:"suggestions"`
	LogVersion  uint64                  `json:"logVersion"`
	GeneratedAt time.Time               `json:"generatedAt"`
}
