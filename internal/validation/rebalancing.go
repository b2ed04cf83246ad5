package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
)

var hundred = decimal.NewFromInt(100)

// ValidateSetTarget validates a target weight update for asset.
func ValidateSetTarget(asset string, req request.SetTargetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(asset) == "" {
		errors["asset"] = "asset is required"
	}
	switch {
	case !req.Target.Valid:
		errors["target"] = "target is required"
	case req.Target.Decimal.IsNegative() || req.Target.Decimal.GreaterThan(hundred):
		errors["target"] = "target must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
