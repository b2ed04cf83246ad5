package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func setupRebalancingHandler(t *testing.T) *RebalancingHandler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svcs := testutil.NewTestServices(t, db)

	base := time.Now().UTC()
	testutil.NewDeposit("1000").WithCreatedAt(base).Build(t, db)
	testutil.NewTransaction().WithAsset("X", "XXX").WithQuantity("4").WithUnitPrice("100").
		WithCreatedAt(base.Add(time.Second)).Build(t, db)
	testutil.NewTransaction().WithAsset("Y", "YYY").WithQuantity("6").WithUnitPrice("100").
		WithCreatedAt(base.Add(2 * time.Second)).Build(t, db)
	svcs.Quotes.WithReady("XXX", "100", "0").WithReady("YYY", "100", "0")

	return NewRebalancingHandler(svcs.Rebalancing)
}

func putTarget(handler *RebalancingHandler, asset, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := testutil.NewJSONRequest(http.MethodPut, "/api/rebalancing/targets/"+asset, body, map[string]string{"asset": asset})
	handler.SetTarget(w, req)
	return w
}

func TestRebalancingHandler_SetTarget(t *testing.T) {
	t.Run("updates the target and suggestions", func(t *testing.T) {
		handler := setupRebalancingHandler(t)

		w := putTarget(handler, "X", `{"target": 70}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var targets []model.TargetAllocation
		require.NoError(t, json.NewDecoder(w.Body).Decode(&targets))
		require.Len(t, targets, 2)
		assert.Equal(t, "70", targets[0].Target.String())

		w = httptest.NewRecorder()
		handler.Suggestions(w, httptest.NewRequest(http.MethodGet, "/api/rebalancing/suggestions", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var suggestions []model.RebalancingSuggestion
		require.NoError(t, json.NewDecoder(w.Body).Decode(&suggestions))
		require.NotEmpty(t, suggestions)
		assert.Equal(t, "X", suggestions[0].Asset)
		assert.Equal(t, model.SuggestionBuy, suggestions[0].Type)
	})

	t.Run("decodes an escaped slash in the asset name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svcs := testutil.NewTestServices(t, db)
		testutil.CreateFundedPortfolio(t, db, "1000", "BTC/USD", "BTC-USD", "2", "500")
		svcs.Quotes.WithReady("BTC-USD", "500", "0")
		handler := NewRebalancingHandler(svcs.Rebalancing)

		w := putTarget(handler, "BTC%2FUSD", `{"target": 100}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var targets []model.TargetAllocation
		require.NoError(t, json.NewDecoder(w.Body).Decode(&targets))
		require.Len(t, targets, 1)
		assert.Equal(t, "BTC/USD", targets[0].Asset)
		assert.Equal(t, "100", targets[0].Target.String())
	})

	t.Run("returns 400 for a malformed escape", func(t *testing.T) {
		handler := setupRebalancingHandler(t)

		w := httptest.NewRecorder()
		req := testutil.NewJSONRequest(http.MethodPut, "/api/rebalancing/targets/X%2F", `{"target": 10}`,
			map[string]string{"asset": "X%2"})
		handler.SetTarget(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for an asset not held", func(t *testing.T) {
		handler := setupRebalancingHandler(t)

		w := putTarget(handler, "Z", `{"target": 10}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for a target out of range", func(t *testing.T) {
		handler := setupRebalancingHandler(t)

		w := putTarget(handler, "X", `{"target": 150}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 400 without a target", func(t *testing.T) {
		handler := setupRebalancingHandler(t)

		w := putTarget(handler, "X", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRebalancingHandler_ResetTargets(t *testing.T) {
	handler := setupRebalancingHandler(t)
	require.Equal(t, http.StatusOK, putTarget(handler, "X", `{"target": 90}`).Code)

	w := httptest.NewRecorder()
	handler.ResetTargets(w, httptest.NewRequest(http.MethodPost, "/api/rebalancing/targets/reset", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var targets []model.TargetAllocation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&targets))
	assert.Equal(t, "40", targets[0].Target.String())

	w = httptest.NewRecorder()
	handler.Targets(w, httptest.NewRequest(http.MethodGet, "/api/rebalancing/targets", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
