package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Value merges a position with the result of its quote lookup.
//
// A ready quote supplies the current price and day change. Pending and failed lookups
// fall back to the average cost and a zero day change, so unpriced holdings show no
// unrealized gain.
func Value(p model.Position, q model.QuoteResult) model.ValuedPosition {
	avg := p.AverageCost()
	costBasis := avg.Mul(p.Quantity)

	status := q.Status
	if status == "" {
		status = model.QuoteFailed
	}

	currentPrice := avg
	dayChange := decimal.Zero
	live := q.Ready()
	if live {
		currentPrice = q.Price
		dayChange = q.DayChangePercent
	}

	marketValue := currentPrice.Mul(p.Quantity)
	unrealized := marketValue.Sub(costBasis)

	unrealizedPercent := decimal.Zero
	if !costBasis.IsZero() {
		unrealizedPercent = unrealized.Div(costBasis).Mul(hundred)
	}

	return model.ValuedPosition{
		Asset:                p.Asset,
		TickerRef:            p.TickerRef,
		Quantity:             p.Quantity,
		AverageCost:          avg,
		CostBasis:            costBasis,
		CurrentPrice:         currentPrice,
		LivePrice:            live,
		QuoteStatus:          status,
		MarketValue:          marketValue,
		UnrealizedPnL:        unrealized,
		UnrealizedPnLPercent: unrealizedPercent,
		DayChangePercent:     dayChange,
	}
}

// ValueAll values every position with the quote for its ticker. quotes is keyed by ticker;
// positions without a ticker or without an entry are valued with the fallback price.
func ValueAll(positions []model.Position, quotes map[string]model.QuoteResult) []model.ValuedPosition {
	valued := make([]model.ValuedPosition, 0, len(positions))
	for _, p := range positions {
		var q model.QuoteResult
		if p.TickerRef != "" {
			q = quotes[p.TickerRef]
		}
		valued = append(valued, Value(p, q))
	}
	return valued
}
