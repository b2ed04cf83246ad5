package validation

import (
	"strings"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// MaxTickerLength matches the width of the ticker column.
const MaxTickerLength = 20

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - type: BUY, SELL, DEPOSIT or WITHDRAWAL (or a localized alias)
//   - asset: required for BUY and SELL, and must not be the reserved cash asset
//   - quantity (or amount): must be positive
//   - unitPrice (or price): must be positive for BUY and SELL
//
// Optional fields:
//   - date: YYYY-MM-DD
//   - fee: must not be negative
//   - ticker: at most MaxTickerLength characters
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	txType, err := model.ParseTransactionType(req.Type)
	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if err != nil {
		errors["type"] = err.Error()
	}

	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			errors["date"] = "date must be in YYYY-MM-DD format"
		}
	}

	quantity := req.QuantityValue()
	if !quantity.Valid {
		errors["quantity"] = "quantity is required"
	} else if !quantity.Decimal.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Fee.Valid && req.Fee.Decimal.IsNegative() {
		errors["fee"] = "fee cannot be negative"
	}

	if len(req.Ticker) > MaxTickerLength {
		errors["ticker"] = "ticker is too long"
	}

	if err == nil && !txType.IsCashMovement() {
		asset := strings.TrimSpace(req.Asset)
		switch {
		case asset == "":
			errors["asset"] = "asset is required"
		case strings.EqualFold(asset, model.CashAsset):
			errors["asset"] = "asset name is reserved for cash"
		}

		unitPrice := req.UnitPriceValue()
		if !unitPrice.Valid {
			errors["unitPrice"] = "unitPrice is required"
		} else if !unitPrice.Decimal.IsPositive() {
			errors["unitPrice"] = "unitPrice must be positive"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
