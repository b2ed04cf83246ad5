package model

import "github.com/shopspring/decimal"

// TargetAllocation pairs the current weight of an asset with the weight the user wants.
// Both values are percentages of total portfolio value.
type TargetAllocation struct {
	Asset   string          `json:"asset"`
	Current decimal.Decimal `json:"current"`
	Target  decimal.Decimal `json:"target"`
}

// SuggestionType is the trade direction of a rebalancing suggestion.
type SuggestionType string

// Trade directions.
const (
	SuggestionBuy  SuggestionType = "BUY"
	SuggestionSell SuggestionType = "SELL"
)

// Urgency levels of a rebalancing suggestion.
const (
	UrgencyHigh   = "high"
	UrgencyNormal = "normal"
)

// RebalancingSuggestion is one trade that moves an asset toward its normalized target weight.
// Quantity is nil when no live price is known for the asset.
type RebalancingSuggestion struct {
	Asset    string           `json:"asset"`
	Type     SuggestionType   `json:"type"`
	Percent  decimal.Decimal  `json:"percent"`
	Amount   decimal.Decimal  `json:"amount"`
	Quantity *decimal.Decimal `json:"quantity"`
	Urgency  string           `json:"urgency"`
	Reason   string           `json:"reason"`
}
