package valuation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

var (
	// minRebalanceDiff is the smallest weight difference, in percentage points, worth a trade.
	minRebalanceDiff = decimal.NewFromInt(1)
	// highUrgencyDiff marks suggestions whose weight difference exceeds it as urgent.
	highUrgencyDiff = decimal.NewFromInt(5)
)

// Plan compares current weights with target weights and returns the trades that close the gap.
//
// Targets are normalized to sum to 100 before comparison, so slider edits that do not add
// up exactly still produce a consistent plan. Differences below one percentage point are
// suppressed. prices holds the live price per asset; assets without one get a suggestion
// with an unknown quantity.
//
// Suggestions keep the order of allocations. When every target is zero nothing is returned.
func Plan(allocations []model.TargetAllocation, totalValue decimal.Decimal, prices map[string]decimal.Decimal) []model.RebalancingSuggestion {
	totalTarget := decimal.Zero
	for _, a := range allocations {
		totalTarget = totalTarget.Add(a.Target)
	}
	if totalTarget.IsZero() {
		return []model.RebalancingSuggestion{}
	}

	suggestions := make([]model.RebalancingSuggestion, 0, len(allocations))
	for _, a := range allocations {
		target := a.Target
		if !totalTarget.Equal(hundred) {
			target = a.Target.Div(totalTarget).Mul(hundred)
		}

		diff := target.Sub(a.Current)
		if diff.Abs().LessThan(minRebalanceDiff) {
			continue
		}

		s := model.RebalancingSuggestion{
			Asset:   a.Asset,
			Type:    model.SuggestionSell,
			Percent: diff.Abs(),
			Amount:  diff.Abs().Div(hundred).Mul(totalValue),
			Urgency: model.UrgencyNormal,
		}
		if diff.IsPositive() {
			s.Type = model.SuggestionBuy
		}
		if diff.Abs().GreaterThan(highUrgencyDiff) {
			s.Urgency = model.UrgencyHigh
		}
		if price, ok := prices[a.Asset]; ok && price.IsPositive() {
			q := s.Amount.Div(price)
			s.Quantity = &q
		}
		s.Reason = reason(s.Type, target, a.Current)

		suggestions = append(suggestions, s)
	}
	return suggestions
}

func reason(t model.SuggestionType, target, current decimal.Decimal) string {
	if t == model.SuggestionBuy {
		return fmt.Sprintf("current weight %s%% is below target %s%%", current.StringFixed(1), target.StringFixed(1))
	}
	return fmt.Sprintf("current weight %s%% is above target %s%%", current.StringFixed(1), target.StringFixed(1))
}
