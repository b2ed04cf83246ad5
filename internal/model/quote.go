package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus is the resolution state of an asynchronous price lookup.
type QuoteStatus string

// Quote lookup states. Pending and failed lookups are both priced with the fallback.
const (
	QuotePending QuoteStatus = "pending"
	QuoteReady   QuoteStatus = "ready"
	QuoteFailed  QuoteStatus = "failed"
)

// QuoteResult is the outcome of a price lookup for one ticker.
type QuoteResult struct {
	Ticker           string          `json:"ticker"`
	Status           QuoteStatus     `json:"status"`
	Price            decimal.Decimal `json:"price"`
	DayChangePercent decimal.Decimal `json:"dayChangePercent"`
	Source           string          `json:"source,omitempty"`
	FetchedAt        time.Time       `json:"fetchedAt,omitempty"`
}

// Ready reports whether the result carries a usable live price.
func (q QuoteResult) Ready() bool {
	return q.Status == QuoteReady
}
