package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func setupTransactionHandler(t *testing.T) (*TransactionHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ts := testutil.NewTestTransactionService(t, db, nil)
	return NewTransactionHandler(ts), db
}

func TestTransactionHandler_AllTransactions(t *testing.T) {
	t.Run("returns empty array when no transactions exist", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		w := httptest.NewRecorder()
		handler.AllTransactions(w, httptest.NewRequest(http.MethodGet, "/api/transaction", nil))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("returns newest first with limit", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		testutil.NewDeposit("100").WithDate(testutil.Day(2024, time.January, 1)).Build(t, db)
		latest := testutil.NewDeposit("200").WithDate(testutil.Day(2024, time.June, 1)).Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction", map[string]string{"limit": "1"})
		w := httptest.NewRecorder()
		handler.AllTransactions(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var txs []model.Transaction
		require.NoError(t, json.NewDecoder(w.Body).Decode(&txs))
		require.Len(t, txs, 1)
		assert.Equal(t, latest.ID, txs[0].ID)
	})

	t.Run("returns 400 on invalid limit", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction", map[string]string{"limit": "0"})
		w := httptest.NewRecorder()
		handler.AllTransactions(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		db.Close()

		w := httptest.NewRecorder()
		handler.AllTransactions(w, httptest.NewRequest(http.MethodGet, "/api/transaction", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns the transaction", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		tx := testutil.NewDeposit("100").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+tx.ID, map[string]string{"uuid": tx.ID})
		w := httptest.NewRecorder()
		handler.GetTransaction(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got model.Transaction
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, tx.ID, got.ID)
		assert.Equal(t, model.TransactionDeposit, got.Type)
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()
		handler.GetTransaction(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	post := func(handler *TransactionHandler, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, testutil.NewJSONRequest(http.MethodPost, "/api/transaction", body, nil))
		return w
	}

	t.Run("creates a deposit", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		w := post(handler, `{"type": "DEPOSIT", "amount": 1000}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var tx model.Transaction
		require.NoError(t, json.NewDecoder(w.Body).Decode(&tx))
		assert.Equal(t, model.CashAsset, tx.Asset)
		assert.Equal(t, "1000", tx.Quantity.String())
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("returns 400 with field details on validation failure", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		w := post(handler, `{"type": "BUY", "asset": "Apple", "quantity": -1}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "validation failed", body.Error)
		assert.Contains(t, body.Details, "quantity")
		assert.Contains(t, body.Details, "unitPrice")
	})

	t.Run("returns 400 on insufficient cash", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		testutil.NewDeposit("100").Build(t, db)

		w := post(handler, `{"type": "BUY", "asset": "Apple", "ticker": "AAPL", "quantity": 1, "unitPrice": 150}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body response.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "insufficient cash", body.Error)
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("returns 400 when selling more than held", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)
		testutil.CreateFundedPortfolio(t, db, "1000", "Apple", "AAPL", "2", "100")

		w := post(handler, `{"type": "SELL", "asset": "Apple", "quantity": 3, "price": 120}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		w := post(handler, `{"type": `)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 405 for a read-only source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mock.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"transactions": []}`), 0o600))
		source, err := repository.NewJSONTransactionSource(path, "$.transactions")
		require.NoError(t, err)
		handler := NewTransactionHandler(service.NewTransactionService(source, nil, "KRW"))

		w := post(handler, `{"type": "DEPOSIT", "amount": 10}`)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
