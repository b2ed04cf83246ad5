package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func setupSystemHandler(t *testing.T) (*SystemHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ss := testutil.NewTestSystemService(t, db)
	return NewSystemHandler(ss), db
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns healthy status when database is connected", func(t *testing.T) {
		handler, _ := setupSystemHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "healthy" {
			t.Errorf("Expected status 'healthy', got '%s'", response.Status)
		}
		if response.Database != "connected" {
			t.Errorf("Expected database 'connected', got '%s'", response.Database)
		}
	})

	t.Run("returns 503 when database is disconnected", func(t *testing.T) {
		handler, db := setupSystemHandler(t)

		// Close the database connection to simulate failure
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", w.Code)
		}
	})
}

func TestSystemHandler_Version(t *testing.T) {
	handler, _ := setupSystemHandler(t)

	w := httptest.NewRecorder()
	handler.Version(w, httptest.NewRequest(http.MethodGet, "/api/system/version", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var info model.VersionInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, int64(2), info.DbVersion)
	assert.NotEmpty(t, info.AppVersion)
}

func TestSystemHandler_SetProviderKey(t *testing.T) {
	t.Run("stores the key", func(t *testing.T) {
		handler, db := setupSystemHandler(t)

		req := testutil.NewJSONRequest(http.MethodPut, "/api/system/provider/finnhub",
			`{"apiKey": "abc123"}`, map[string]string{"provider": "finnhub"})
		w := httptest.NewRecorder()
		handler.SetProviderKey(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		testutil.AssertRowCount(t, db, "system_setting", 1)
	})

	t.Run("rejects an empty key", func(t *testing.T) {
		handler, _ := setupSystemHandler(t)

		req := testutil.NewJSONRequest(http.MethodPut, "/api/system/provider/finnhub",
			`{"apiKey": "  "}`, map[string]string{"provider": "finnhub"})
		w := httptest.NewRecorder()
		handler.SetProviderKey(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects an unknown provider", func(t *testing.T) {
		handler, _ := setupSystemHandler(t)

		req := testutil.NewJSONRequest(http.MethodPut, "/api/system/provider/acme",
			`{"apiKey": "abc"}`, map[string]string{"provider": "acme"})
		w := httptest.NewRecorder()
		handler.SetProviderKey(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("503 without an encryption key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSystemHandler(service.NewSystemService(db, repository.NewSettingRepository(db), "", "", nil))

		req := testutil.NewJSONRequest(http.MethodPut, "/api/system/provider/finnhub",
			`{"apiKey": "abc"}`, map[string]string{"provider": "finnhub"})
		w := httptest.NewRecorder()
		handler.SetProviderKey(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
