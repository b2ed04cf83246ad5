package valuation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

var day0 = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "expected %s, got %s %v", want, got.String(), msgAndArgs)
}

func buy(asset, ticker, qty, price, fee string, offset int) model.Transaction {
	return trade(model.TransactionBuy, asset, ticker, qty, price, fee, offset)
}

func sell(asset, ticker, qty, price, fee string, offset int) model.Transaction {
	return trade(model.TransactionSell, asset, ticker, qty, price, fee, offset)
}

func trade(typ model.TransactionType, asset, ticker, qty, price, fee string, offset int) model.Transaction {
	return model.Transaction{
		ID:          asset + "-" + string(typ),
		Date:        day0.AddDate(0, 0, offset),
		Type:        typ,
		Asset:       asset,
		TickerRef:   ticker,
		Quantity:    d(qty),
		UnitPrice:   d(price),
		TotalAmount: d(qty).Mul(d(price)),
		Fee:         d(fee),
		Status:      model.StatusCompleted,
	}
}

func cashMove(typ model.TransactionType, amount string, offset int) model.Transaction {
	return model.Transaction{
		ID:          "cash-" + amount,
		Date:        day0.AddDate(0, 0, offset),
		Type:        typ,
		Asset:       model.CashAsset,
		Quantity:    d(amount),
		UnitPrice:   decimal.NewFromInt(1),
		TotalAmount: d(amount),
		Fee:         decimal.Zero,
		Status:      model.StatusCompleted,
	}
}

func ready(ticker, price, dayChange string) model.QuoteResult {
	return model.QuoteResult{
		Ticker:           ticker,
		Status:           model.QuoteReady,
		Price:            d(price),
		DayChangePercent: d(dayChange),
		Source:           "test",
	}
}
