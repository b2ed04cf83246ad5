package quote

import (
	"regexp"
	"strings"
)

// defaultSymbols maps common asset names to their Yahoo tickers.
var defaultSymbols = map[string]string{
	"삼성전자":    "005930.KS",
	"카카오":     "035720.KS",
	"네이버":     "035420.KS",
	"현대차":     "005380.KS",
	"SK하이닉스":  "000660.KS",
	"애플":      "AAPL",
	"테슬라":     "TSLA",
	"구글":      "GOOGL",
	"마이크로소프트": "MSFT",
	"비트코인":    "BTC-USD",
	"이더리움":    "ETH-USD",
}

var parenthesized = regexp.MustCompile(`\s*\(.*\)\s*`)

// Resolver maps asset names to tickers for transactions recorded without one.
type Resolver struct {
	symbols map[string]string
}

// NewResolver returns a Resolver over the built-in symbols extended by overrides.
func NewResolver(overrides map[string]string) *Resolver {
	symbols := make(map[string]string, len(defaultSymbols)+len(overrides))
	for name, ticker := range defaultSymbols {
		symbols[name] = ticker
	}
	for name, ticker := range overrides {
		symbols[name] = ticker
	}
	return &Resolver{symbols: symbols}
}

// Resolve returns the ticker of asset, or "" when none is known.
// A parenthesized suffix such as "삼성전자 (우선주)" is ignored on the second try.
func (r *Resolver) Resolve(asset string) string {
	if t, ok := r.symbols[strings.TrimSpace(asset)]; ok {
		return t
	}
	clean := strings.TrimSpace(parenthesized.ReplaceAllString(asset, ""))
	return r.symbols[clean]
}
