package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CashAsset is the asset name every DEPOSIT and WITHDRAWAL is booked against.
const CashAsset = "cash"

// StatusCompleted is the lifecycle tag assigned to newly created transactions.
const StatusCompleted = "completed"

// TransactionType identifies what a transaction does to the position book or cash ledger.
type TransactionType string

// Supported transaction types.
const (
	TransactionBuy        TransactionType = "BUY"
	TransactionSell       TransactionType = "SELL"
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

// transactionTypeAliases maps the localized labels older clients submit to canonical types.
var transactionTypeAliases = map[string]TransactionType{
	"BUY":        TransactionBuy,
	"SELL":       TransactionSell,
	"DEPOSIT":    TransactionDeposit,
	"WITHDRAWAL": TransactionWithdrawal,
	"매수":         TransactionBuy,
	"매도":         TransactionSell,
	"입금":         TransactionDeposit,
	"출금":         TransactionWithdrawal,
}

// ParseTransactionType resolves a submitted type label to its canonical TransactionType.
// Matching is case-insensitive and accepts the localized aliases.
func ParseTransactionType(s string) (TransactionType, error) {
	t, ok := transactionTypeAliases[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
	return t, nil
}

// IsCashMovement reports whether the type moves cash in or out without touching a position.
func (t TransactionType) IsCashMovement() bool {
	return t == TransactionDeposit || t == TransactionWithdrawal
}

// Transaction is an immutable entry of the transaction log.
//
// TotalAmount is Quantity*UnitPrice (fee excluded) as recorded at creation.
// Valuation never reads it back; it recomputes from Quantity and UnitPrice.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Asset       string          `json:"asset"`
	TickerRef   string          `json:"ticker,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Fee         decimal.Decimal `json:"fee"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

// Gross returns Quantity*UnitPrice.
func (t Transaction) Gross() decimal.Decimal {
	return t.Quantity.Mul(t.UnitPrice)
}
