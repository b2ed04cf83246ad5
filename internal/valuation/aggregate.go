package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// Summarize aggregates valued positions and the cash balance into the portfolio summary.
//
// Today's change only counts positions with a live quote: each contributes the difference
// between its market value and the value implied by its day change percentage.
func Summarize(cash, realized decimal.Decimal, valued []model.ValuedPosition) model.PortfolioSummary {
	holdings := decimal.Zero
	unrealized := decimal.Zero
	todaysChange := decimal.Zero

	for _, v := range valued {
		holdings = holdings.Add(v.MarketValue)
		unrealized = unrealized.Add(v.UnrealizedPnL)

		if !v.LivePrice || v.DayChangePercent.IsZero() {
			continue
		}
		factor := decimal.NewFromInt(1).Add(v.DayChangePercent.Div(hundred))
		if !factor.IsPositive() {
			continue
		}
		previous := v.MarketValue.Div(factor)
		todaysChange = todaysChange.Add(v.MarketValue.Sub(previous))
	}

	total := cash.Add(holdings)

	todaysChangePercent := decimal.Zero
	if base := total.Sub(todaysChange); !base.IsZero() {
		todaysChangePercent = todaysChange.Div(base).Mul(hundred)
	}

	return model.PortfolioSummary{
		Cash:                cash,
		HoldingsValue:       holdings,
		TotalValue:          total,
		UnrealizedPnL:       unrealized,
		RealizedPnL:         realized,
		TodaysChange:        todaysChange,
		TodaysChangePercent: todaysChangePercent,
	}
}

// Allocation splits total value into a cash slice (when cash is positive) followed by
// one slice per position, each in percent of total value.
func Allocation(summary model.PortfolioSummary, valued []model.ValuedPosition) []model.AllocationSlice {
	slices := make([]model.AllocationSlice, 0, len(valued)+1)
	if summary.Cash.IsPositive() {
		slices = append(slices, model.AllocationSlice{
			Name:   model.CashAsset,
			Value:  weight(summary.Cash, summary.TotalValue),
			IsCash: true,
		})
	}
	for _, v := range valued {
		slices = append(slices, model.AllocationSlice{
			Name:  v.Asset,
			Value: weight(v.MarketValue, summary.TotalValue),
		})
	}
	return slices
}

// CurrentWeights returns the share of total value in percent of cash (when positive) and of
// each position, in the same order as Allocation, with the target initialized to the current
// weight. Untouched targets therefore sum to 100 and plan no trades.
func CurrentWeights(summary model.PortfolioSummary, valued []model.ValuedPosition) []model.TargetAllocation {
	weights := make([]model.TargetAllocation, 0, len(valued)+1)
	if summary.Cash.IsPositive() {
		w := weight(summary.Cash, summary.TotalValue)
		weights = append(weights, model.TargetAllocation{
			Asset:   model.CashAsset,
			Current: w,
			Target:  w,
		})
	}
	for _, v := range valued {
		w := weight(v.MarketValue, summary.TotalValue)
		weights = append(weights, model.TargetAllocation{
			Asset:   v.Asset,
			Current: w,
			Target:  w,
		})
	}
	return weights
}

func weight(value, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return value.Div(total).Mul(hundred)
}
