package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
)

func testConfig() *config.Config {
	cfg := &config.Config{Currency: "USD"}
	cfg.Database.Path = database.MemoryPath
	cfg.Source.Kind = config.SourceSQLite
	cfg.Quote.Providers = []string{"yahoo", "finnhub"}
	cfg.Quote.CacheTTL = time.Minute
	cfg.Quote.LookupTimeout = time.Second
	return cfg
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("wires the sqlite store and both providers", func(t *testing.T) {
		c, err := Build(ctx, testConfig(), zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { c.Close() })

		assert.IsType(t, &repository.TransactionRepository{}, c.Store)
		assert.Equal(t, []string{"yahoo", "finnhub"}, c.Quotes.SourceNames())
		assert.NoError(t, c.System.CheckHealth())

		info, err := c.System.CheckVersion(ctx)
		require.NoError(t, err)
		assert.True(t, info.Features["writable_transactions"])
	})

	t.Run("selects the json source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mock.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"transactions": [{"type": "입금", "amount": 100, "date": "2024-01-01"}]}`), 0o600))

		cfg := testConfig()
		cfg.Source.Kind = config.SourceJSON
		cfg.Source.MockDataPath = path
		cfg.Source.JSONPath = "$.transactions"

		c, err := Build(ctx, cfg, zerolog.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { c.Close() })

		summary, err := c.Portfolio.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, "100", summary.Cash.String())
	})

	t.Run("rejects an unknown provider", func(t *testing.T) {
		cfg := testConfig()
		cfg.Quote.Providers = []string{"bloomberg"}

		_, err := Build(ctx, cfg, zerolog.Nop())

		assert.ErrorContains(t, err, "bloomberg")
	})
}
