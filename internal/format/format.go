// Package format renders decimals for people: money in the portfolio currency,
// percentages and quantities.
package format

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amount in currency with the currency's grapheme, thousands
// separator and number of minor digits. Unknown codes are registered on the fly
// by go-money with two minor digits.
func Money(amount decimal.Decimal, currency string) string {
	// the constructor never returns a nil currency
	cur := money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedMoney is Money with an explicit + on positive amounts.
func SignedMoney(amount decimal.Decimal, currency string) string {
	if amount.IsPositive() {
		return "+" + Money(amount, currency)
	}
	return Money(amount, currency)
}

// Percent formats a percentage with two decimals and a sign, e.g. "+1.25%".
func Percent(p decimal.Decimal) string {
	s := p.StringFixed(2) + "%"
	if p.Round(2).IsPositive() {
		return "+" + s
	}
	return s
}

// Weight formats an allocation weight with one decimal, e.g. "42.5%".
func Weight(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// Quantity formats a share count without trailing zeros, at most four decimals.
func Quantity(q decimal.Decimal) string {
	return q.Round(4).String()
}
