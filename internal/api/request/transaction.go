package request

import "github.com/shopspring/decimal"

// CreateTransactionRequest represents the request body for recording a transaction.
//
// Quantity and UnitPrice may also be sent as amount and price, the names the
// dashboard uses. For DEPOSIT and WITHDRAWAL only the quantity (the cash amount) matters.
type CreateTransactionRequest struct {
	Date      string              `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Type      string              `json:"type"`
	Asset     string              `json:"asset"`
	Ticker    string              `json:"ticker,omitempty"`
	Quantity  decimal.NullDecimal `json:"quantity"`
	Amount    decimal.NullDecimal `json:"amount"`
	UnitPrice decimal.NullDecimal `json:"unitPrice"`
	Price     decimal.NullDecimal `json:"price"`
	Fee       decimal.NullDecimal `json:"fee"`
	Currency  string              `json:"currency,omitempty"` // Accepted for compatibility, not converted
}

// QuantityValue returns quantity, falling back to amount.
func (r CreateTransactionRequest) QuantityValue() decimal.NullDecimal {
	if r.Quantity.Valid {
		return r.Quantity
	}
	return r.Amount
}

// UnitPriceValue returns unitPrice, falling back to price.
func (r CreateTransactionRequest) UnitPriceValue() decimal.NullDecimal {
	if r.UnitPrice.Valid {
		return r.UnitPrice
	}
	return r.Price
}
