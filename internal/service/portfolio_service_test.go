package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

// TestPortfolioService_View tests the full derived view.
//
// WHY: The view is what the dashboard renders. It must combine the replayed log with
// live quotes and fall back to cost when a quote is missing.
func TestPortfolioService_View(t *testing.T) {
	ctx := context.Background()

	t.Run("empty log yields an empty portfolio", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockQuoteLookup())

		// Execute
		view, err := svc.View(ctx)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, view.Positions)
		assert.Empty(t, view.Suggestions)
		assert.True(t, view.Summary.TotalValue.IsZero())
		assert.Equal(t, uint64(0), view.LogVersion)
	})

	t.Run("values holdings with live quotes", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		quotes := testutil.NewMockQuoteLookup().WithReady("AAPL", "200", "0")
		svc := testutil.NewTestPortfolioService(t, db, quotes)
		testutil.CreateFundedPortfolio(t, db, "10000", "Apple", "AAPL", "10", "150")

		// Execute
		view, err := svc.View(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Positions, 1)
		p := view.Positions[0]
		assert.True(t, p.LivePrice)
		assert.Equal(t, "200", p.CurrentPrice.String())
		assert.Equal(t, "2000", p.MarketValue.String())
		assert.Equal(t, "500", p.UnrealizedPnL.String())

		assert.Equal(t, "8500", view.Summary.Cash.String())
		assert.Equal(t, "10500", view.Summary.TotalValue.String())

		require.Len(t, view.Allocation, 2)
		assert.True(t, view.Allocation[0].IsCash)
	})

	t.Run("falls back to average cost without a quote", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockQuoteLookup())
		testutil.CreateFundedPortfolio(t, db, "10000", "Apple", "AAPL", "10", "150")

		// Execute
		holdings, err := svc.Holdings(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, holdings, 1)
		assert.False(t, holdings[0].LivePrice)
		assert.Equal(t, model.QuoteFailed, holdings[0].QuoteStatus)
		assert.Equal(t, "150", holdings[0].CurrentPrice.String())
		assert.True(t, holdings[0].UnrealizedPnL.IsZero())
	})

	t.Run("resolves tickers of assets recorded without one", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		quotes := testutil.NewMockQuoteLookup().WithReady("AAPL", "200", "1.5")
		svc := testutil.NewTestPortfolioService(t, db, quotes)
		testutil.NewDeposit("5000").Build(t, db)
		testutil.NewTransaction().WithAsset("애플", "").WithQuantity("1").WithUnitPrice("180").Build(t, db)

		// Execute
		holdings, err := svc.Holdings(ctx)

		// Assert
		require.NoError(t, err)
		require.Len(t, holdings, 1)
		assert.Equal(t, "AAPL", holdings[0].TickerRef)
		assert.True(t, holdings[0].LivePrice)
		assert.Equal(t, "1.5", holdings[0].DayChangePercent.String())
	})

	t.Run("rounds values for presentation", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockQuoteLookup())
		testutil.NewDeposit("1000").Build(t, db)
		testutil.NewTransaction().WithQuantity("3").WithUnitPrice("33.333333").Build(t, db)

		// Execute
		summary, err := svc.Summary(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "900", summary.Cash.String())
		assert.Equal(t, "100", summary.HoldingsValue.String())
	})
}

// TestPortfolioService_ReadAfterWrite tests that a created transaction is visible immediately.
//
// WHY: A cached snapshot must never hide a transaction the user just recorded.
func TestPortfolioService_ReadAfterWrite(t *testing.T) {
	ctx := context.Background()

	// Setup
	db := testutil.SetupTestDB(t)
	svcs := testutil.NewTestServices(t, db)

	before, err := svcs.Portfolio.Summary(ctx)
	require.NoError(t, err)
	require.True(t, before.Cash.IsZero())

	// Execute
	_, err = svcs.Transaction.CreateTransaction(ctx, depositRequest("2500"))
	require.NoError(t, err)
	view, err := svcs.Portfolio.View(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2500", view.Summary.Cash.String())
	assert.Equal(t, uint64(1), view.LogVersion)
}

// TestPortfolioService_SnapshotReuse tests that reads reuse the published snapshot.
//
// WHY: Quote lookups hit external providers; a current snapshot must be served as is.
func TestPortfolioService_SnapshotReuse(t *testing.T) {
	ctx := context.Background()

	// Setup
	db := testutil.SetupTestDB(t)
	quotes := testutil.NewMockQuoteLookup().WithReady("AAPL", "200", "0")
	svc := testutil.NewTestPortfolioService(t, db, quotes)
	testutil.CreateFundedPortfolio(t, db, "10000", "Apple", "AAPL", "10", "150")
	require.NoError(t, svc.Refresh(ctx))

	// Execute
	_, err := svc.View(ctx)
	require.NoError(t, err)
	_, err = svc.Allocation(ctx)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int32(1), quotes.Calls.Load())

	svc.LogChanged()
	_, err = svc.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), quotes.Calls.Load())
}

// TestPortfolioService_Run tests the background refresher.
func TestPortfolioService_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup
	db := testutil.SetupTestDB(t)
	quotes := testutil.NewMockQuoteLookup()
	svc := testutil.NewTestPortfolioService(t, db, quotes)
	go svc.Run(ctx)

	// Execute
	svc.LogChanged()

	// Assert
	assert.Eventually(t, func() bool {
		return quotes.Calls.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
}
