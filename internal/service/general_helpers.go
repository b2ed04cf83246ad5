package service

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// Presentation precision. The engine stays exact; only responses are rounded.
const (
	MoneyPlaces    = 2
	QuantityPlaces = 4
	PercentPlaces  = 2
)

// roundMoney rounds a monetary value to MoneyPlaces decimals.
//
// The rounding is half away from zero, as decimal.Round does.
//
// Example:
//
//	roundMoney(123.456789)  // returns 123.46
//	roundMoney(0.005)       // returns 0.01
//	roundMoney(1.994)       // returns 1.99
func roundMoney(value decimal.Decimal) decimal.Decimal {
	return value.Round(MoneyPlaces)
}

func roundQuantity(value decimal.Decimal) decimal.Decimal {
	return value.Round(QuantityPlaces)
}

func roundPercent(value decimal.Decimal) decimal.Decimal {
	return value.Round(PercentPlaces)
}

// RoundView returns a copy of view with every monetary value, quantity and percentage
// rounded for presentation. The input is not modified.
func RoundView(view model.PortfolioView) model.PortfolioView {
	out := view

	out.Positions = make([]model.ValuedPosition, len(view.Positions))
	for i, p := range view.Positions {
		out.Positions[i] = RoundPosition(p)
	}

	out.Summary = RoundSummary(view.Summary)

	out.Allocation = make([]model.AllocationSlice, len(view.Allocation))
	for i, a := range view.Allocation {
		a.Value = roundPercent(a.Value)
		out.Allocation[i] = a
	}

	out.Targets = make([]model.TargetAllocation, len(view.Targets))
	for i, t := range view.Targets {
		t.Current = roundPercent(t.Current)
		t.Target = roundPercent(t.Target)
		out.Targets[i] = t
	}

	out.Suggestions = make([]model.RebalancingSuggestion, len(view.Suggestions))
	for i, s := range view.Suggestions {
		s.Percent = roundPercent(s.Percent)
		s.Amount = roundMoney(s.Amount)
		if s.Quantity != nil {
			q := roundQuantity(*s.Quantity)
			s.Quantity = &q
		}
		out.Suggestions[i] = s
	}

	return out
}

// RoundPosition rounds one valued position for presentation.
func RoundPosition(p model.ValuedPosition) model.ValuedPosition {
	p.Quantity = roundQuantity(p.Quantity)
	p.AverageCost = roundMoney(p.AverageCost)
	p.CostBasis = roundMoney(p.CostBasis)
	p.CurrentPrice = roundMoney(p.CurrentPrice)
	p.MarketValue = roundMoney(p.MarketValue)
	p.UnrealizedPnL = roundMoney(p.UnrealizedPnL)
	p.UnrealizedPnLPercent = roundPercent(p.UnrealizedPnLPercent)
	p.DayChangePercent = roundPercent(p.DayChangePercent)
	return p
}

// RoundSummary rounds the portfolio summary for presentation.
func RoundSummary(s model.PortfolioSummary) model.PortfolioSummary {
	s.Cash = roundMoney(s.Cash)
	s.HoldingsValue = roundMoney(s.HoldingsValue)
	s.TotalValue = roundMoney(s.TotalValue)
	s.UnrealizedPnL = roundMoney(s.UnrealizedPnL)
	s.RealizedPnL = roundMoney(s.RealizedPnL)
	s.TodaysChange = roundMoney(s.TodaysChange)
	s.TodaysChangePercent = roundPercent(s.TodaysChangePercent)
	return s
}
