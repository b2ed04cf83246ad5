package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

// TestTransactionRepository_RoundTrip verifies that decimals survive storage exactly.
//
// WHY: amounts are stored as TEXT. A float column would turn 0.1 + 0.2 into 0.30000000000000004
// and the replayed cash balance would drift from what the user entered.
func TestTransactionRepository_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	ctx := context.Background()

	// Setup
	want := testutil.NewTransaction().
		WithQuantity("0.1234").
		WithUnitPrice("187.33").
		WithFee("0.99").
		Model()

	// Execute
	require.NoError(t, repo.InsertTransaction(ctx, want))
	got, err := repo.GetTransaction(ctx, want.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, model.TransactionBuy, got.Type)
	assert.Equal(t, "Apple", got.Asset)
	assert.Equal(t, "AAPL", got.TickerRef)
	assert.True(t, want.Date.Equal(got.Date))
	assert.Equal(t, "0.1234", got.Quantity.String())
	assert.Equal(t, "187.33", got.UnitPrice.String())
	assert.True(t, want.TotalAmount.Equal(got.TotalAmount))
	assert.Equal(t, "0.99", got.Fee.String())
	assert.Equal(t, model.StatusCompleted, got.Status)
}

func TestTransactionRepository_CashMovementHasNoTicker(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)

	deposit := testutil.NewDeposit("500").Build(t, db)

	got, err := repo.GetTransaction(context.Background(), deposit.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TickerRef)
	assert.Equal(t, model.CashAsset, got.Asset)
}

// TestTransactionRepository_ListOrder verifies the replay order.
//
// WHY: a sell must be replayed after the buy that opened the position, even when a backdated
// buy is inserted later. Same-day entries keep the order they were recorded in.
func TestTransactionRepository_ListOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// Setup: inserted out of date order
	late := testutil.NewTransaction().WithDate(testutil.Day(2024, time.March, 1)).WithCreatedAt(base).Build(t, db)
	sameDaySecond := testutil.NewTransaction().WithDate(testutil.Day(2024, time.January, 2)).WithCreatedAt(base.Add(time.Minute)).Build(t, db)
	sameDayFirst := testutil.NewDeposit("1000").WithDate(testutil.Day(2024, time.January, 2)).WithCreatedAt(base).Build(t, db)
	early := testutil.NewDeposit("5").WithDate(testutil.Day(2023, time.December, 31)).WithCreatedAt(base.Add(time.Hour)).Build(t, db)

	// Execute
	txs, err := repo.ListTransactions(context.Background())

	// Assert
	require.NoError(t, err)
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	assert.Equal(t, []string{early.ID, sameDayFirst.ID, sameDaySecond.ID, late.ID}, ids)
}

func TestTransactionRepository_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)

	txs, err := repository.NewTransactionRepository(db).ListTransactions(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, txs, "an empty log serializes as [] not null")
	assert.Empty(t, txs)
}

func TestTransactionRepository_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := repository.NewTransactionRepository(db).GetTransaction(context.Background(), testutil.MakeID())

	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
}

func TestTransactionRepository_DuplicateID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	tx := testutil.NewTransaction().Build(t, db)

	err := repo.InsertTransaction(context.Background(), tx)

	assert.Error(t, err)
	testutil.AssertRowCount(t, db, `"transaction"`, 1)
}

// TestTransactionRepository_CorruptDecimal verifies that a hand-edited row is reported, not zeroed.
func TestTransactionRepository_CorruptDecimal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tx := testutil.NewTransaction().Build(t, db)

	_, err := db.Exec(`UPDATE "transaction" SET quantity = 'ten' WHERE id = ?`, tx.ID)
	require.NoError(t, err)

	_, err = repository.NewTransactionRepository(db).ListTransactions(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrDataInconsistency)
}
