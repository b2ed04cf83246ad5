package validation

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
)

func num(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var vErr *Error
	require.True(t, errors.As(err, &vErr), "expected a validation error, got %v", err)
	return vErr.Fields
}

func TestValidateCreateTransaction(t *testing.T) {
	t.Run("valid buy", func(t *testing.T) {
		err := ValidateCreateTransaction(request.CreateTransactionRequest{
			Date: "2025-03-01", Type: "BUY", Asset: "Apple", Ticker: "AAPL",
			Quantity: num("2"), UnitPrice: num("190.5"), Fee: num("1"),
		})
		assert.NoError(t, err)
	})

	t.Run("dashboard field names and localized type", func(t *testing.T) {
		err := ValidateCreateTransaction(request.CreateTransactionRequest{
			Type: "매수", Asset: "삼성전자", Amount: num("3"), Price: num("71000"),
		})
		assert.NoError(t, err)
	})

	t.Run("deposit needs no asset or price", func(t *testing.T) {
		err := ValidateCreateTransaction(request.CreateTransactionRequest{Type: "deposit", Quantity: num("1000")})
		assert.NoError(t, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		fields := fieldErrors(t, ValidateCreateTransaction(request.CreateTransactionRequest{Type: "SELL"}))

		assert.Contains(t, fields, "asset")
		assert.Contains(t, fields, "quantity")
		assert.Contains(t, fields, "unitPrice")
	})

	t.Run("unknown type", func(t *testing.T) {
		fields := fieldErrors(t, ValidateCreateTransaction(request.CreateTransactionRequest{Type: "GIFT", Quantity: num("1")}))

		assert.Contains(t, fields, "type")
		assert.NotContains(t, fields, "asset")
	})

	t.Run("invalid values", func(t *testing.T) {
		fields := fieldErrors(t, ValidateCreateTransaction(request.CreateTransactionRequest{
			Date: "01/03/2025", Type: "BUY", Asset: "Cash", Ticker: "WAYTOOLONGTICKERSYMBOL",
			Quantity: num("0"), UnitPrice: num("-1"), Fee: num("-0.5"),
		}))

		assert.Equal(t, []string{"asset", "date", "fee", "quantity", "ticker", "unitPrice"}, slices.Sorted(maps.Keys(fields)))
	})
}

func TestValidateSetTarget(t *testing.T) {
	assert.NoError(t, ValidateSetTarget("Apple", request.SetTargetRequest{Target: num("70")}))
	assert.NoError(t, ValidateSetTarget("Apple", request.SetTargetRequest{Target: num("0")}))

	fields := fieldErrors(t, ValidateSetTarget(" ", request.SetTargetRequest{}))
	assert.Contains(t, fields, "asset")
	assert.Contains(t, fields, "target")

	fields = fieldErrors(t, ValidateSetTarget("Apple", request.SetTargetRequest{Target: num("100.01")}))
	assert.Contains(t, fields, "target")
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID("550e8400-e29b-41d4-a716-446655440000"))
	assert.ErrorIs(t, ValidateUUID(""), apperrors.ErrEmptyID)
	assert.ErrorIs(t, ValidateUUID("not-a-uuid"), apperrors.ErrInvalidUUID)
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "second", "a": "first"}}
	assert.Equal(t, "a: first; b: second", err.Error())
}

func TestValidateTicker(t *testing.T) {
	for _, ok := range []string{"AAPL", "005930.KS", "BTC-USD", "^GSPC", "EURUSD=X"} {
		assert.NoError(t, ValidateTicker(ok), ok)
	}
	for _, bad := range []string{"", " ", "AAPL;DROP", "삼성전자", "ABCDEFGHIJKLMNOPQRSTU"} {
		assert.ErrorIs(t, ValidateTicker(bad), apperrors.ErrInvalidTicker, bad)
	}
}
