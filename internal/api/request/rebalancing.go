package request

import "github.com/shopspring/decimal"

// SetTargetRequest sets the target weight of one asset, in percent.
type SetTargetRequest struct {
	Target decimal.NullDecimal `json:"target"`
}
