package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svcs := testutil.NewTestServices(t, db)
	svcs.Quotes.WithReady("AAPL", "200", "1")

	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	router := api.NewRouter(api.Services{
		System:      svcs.System,
		Transaction: svcs.Transaction,
		Portfolio:   svcs.Portfolio,
		Rebalancing: svcs.Rebalancing,
		News:        svcs.News,
	}, cfg, zerolog.Nop())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// TestRouter_EndToEnd drives the dashboard flow through the HTTP API.
func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/transaction", `{"type": "DEPOSIT", "amount": 1000}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/transaction",
		`{"type": "BUY", "asset": "Apple", "ticker": "AAPL", "quantity": 5, "unitPrice": 160, "fee": 0}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	resp = do(t, http.MethodGet, srv.URL+"/api/transaction/"+created.ID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/portfolio/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary model.PortfolioSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, "200", summary.Cash.String())
	assert.Equal(t, "1000", summary.HoldingsValue.String())
	assert.Equal(t, "1200", summary.TotalValue.String())
	assert.Equal(t, "200", summary.UnrealizedPnL.String())

	resp = do(t, http.MethodPut, srv.URL+"/api/rebalancing/targets/Apple", `{"target": 100}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = do(t, http.MethodPut, srv.URL+"/api/rebalancing/targets/cash", `{"target": 0}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/rebalancing/suggestions", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var suggestions []model.RebalancingSuggestion
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&suggestions))
	require.Len(t, suggestions, 2)
	assert.Equal(t, model.CashAsset, suggestions[0].Asset)
	assert.Equal(t, model.SuggestionSell, suggestions[0].Type)
	assert.Equal(t, "Apple", suggestions[1].Asset)
	assert.Equal(t, model.SuggestionBuy, suggestions[1].Type)
	assert.Equal(t, "200", suggestions[1].Amount.String())
	require.NotNil(t, suggestions[1].Quantity)
	assert.Equal(t, "1", suggestions[1].Quantity.String())
}

func TestRouter_Validation(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/transaction/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/quote/BAD%20TICKER", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/quote/AAPL", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/system/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Content-Type"))
}

// TestRouter_EscapedAssetPath sets a target for an asset whose name contains a slash.
func TestRouter_EscapedAssetPath(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/transaction", `{"type": "DEPOSIT", "amount": 1000}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = do(t, http.MethodPost, srv.URL+"/api/transaction",
		`{"type": "BUY", "asset": "BTC/USD", "ticker": "BTC-USD", "quantity": 2, "unitPrice": 500, "fee": 0}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/api/rebalancing/targets/BTC%2FUSD", `{"target": 100}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var targets []model.TargetAllocation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&targets))
	require.Len(t, targets, 1)
	assert.Equal(t, "BTC/USD", targets[0].Asset)
}
