package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
)

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TransactionBuilder provides a fluent interface for creating transactions.
type TransactionBuilder struct {
	tx model.Transaction
}

// NewTransaction creates a TransactionBuilder for a BUY of 10 units at 100.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{tx: model.Transaction{
		ID:        MakeID(),
		Date:      Day(2024, time.January, 2),
		Type:      model.TransactionBuy,
		Asset:     "Apple",
		TickerRef: "AAPL",
		Quantity:  decimal.NewFromInt(10),
		UnitPrice: decimal.NewFromInt(100),
		Fee:       decimal.Zero,
		Status:    model.StatusCompleted,
		CreatedAt: time.Now().UTC(),
	}}
}

// NewDeposit creates a TransactionBuilder for a cash deposit of amount.
func NewDeposit(amount string) *TransactionBuilder {
	return NewTransaction().
		WithType(model.TransactionDeposit).
		WithAsset(model.CashAsset, "").
		WithQuantity(amount).
		WithUnitPrice("1")
}

// WithID sets a custom ID
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.tx.ID = id
	return b
}

// WithDate sets the transaction date
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.tx.Date = date
	return b
}

// WithType sets the transaction type
func (b *TransactionBuilder) WithType(txType model.TransactionType) *TransactionBuilder {
	b.tx.Type = txType
	return b
}

// WithAsset sets the asset name and ticker. An empty ticker leaves it to the resolver.
func (b *TransactionBuilder) WithAsset(asset, ticker string) *TransactionBuilder {
	b.tx.Asset = asset
	b.tx.TickerRef = ticker
	return b
}

// WithQuantity sets the quantity from a decimal literal
func (b *TransactionBuilder) WithQuantity(q string) *TransactionBuilder {
	b.tx.Quantity = decimal.RequireFromString(q)
	return b
}

// WithUnitPrice sets the unit price from a decimal literal
func (b *TransactionBuilder) WithUnitPrice(p string) *TransactionBuilder {
	b.tx.UnitPrice = decimal.RequireFromString(p)
	return b
}

// WithFee sets the fee from a decimal literal
func (b *TransactionBuilder) WithFee(f string) *TransactionBuilder {
	b.tx.Fee = decimal.RequireFromString(f)
	return b
}

// WithCreatedAt sets the creation timestamp used to order same-day transactions.
func (b *TransactionBuilder) WithCreatedAt(ts time.Time) *TransactionBuilder {
	b.tx.CreatedAt = ts
	return b
}

// Model returns the transaction without storing it.
func (b *TransactionBuilder) Model() model.Transaction {
	tx := b.tx
	tx.TotalAmount = tx.Gross()
	return tx
}

// Build creates the transaction in the database
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	tx := b.Model()
	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), tx); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	return tx
}

// CreateFundedPortfolio deposits cash and buys the given asset, returning both transactions.
//
// Example usage:
//
//	testutil.CreateFundedPortfolio(t, db, "10000", "Apple", "AAPL", "10", "150")
func CreateFundedPortfolio(t *testing.T, db *sql.DB, cash, asset, ticker, quantity, price string) []model.Transaction {
	t.Helper()

	base := time.Now().UTC()
	deposit := NewDeposit(cash).
		WithDate(Day(2024, time.January, 1)).
		WithCreatedAt(base).
		Build(t, db)
	buy := NewTransaction().
		WithDate(Day(2024, time.January, 2)).
		WithAsset(asset, ticker).
		WithQuantity(quantity).
		WithUnitPrice(price).
		WithCreatedAt(base.Add(time.Second)).
		Build(t, db)

	return []model.Transaction{deposit, buy}
}

// NullDecimal returns a valid NullDecimal parsed from a decimal literal, for request bodies.
func NullDecimal(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}
