package yahoo

import "github.com/shopspring/decimal"

// Response represents the raw JSON response structure from the Yahoo Finance chart API.
// Only the meta block is decoded; the quote needs no time series.
//
// The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata and the latest market price
//   - Chart.Error: Optional error object from Yahoo API
type Response struct {
	Chart struct {
		Result []struct {
			Meta Meta `json:"meta"`
		} `json:"result"`
		Error *ChartError `json:"error"`
	} `json:"chart"`
}

// Meta is the summary block of a chart result.
// Prices are decoded straight into decimals so no float rounding enters the engine.
type Meta struct {
	Currency           string              `json:"currency"`
	Symbol             string              `json:"symbol"`
	ExchangeName       string              `json:"exchangeName"`
	RegularMarketPrice decimal.NullDecimal `json:"regularMarketPrice"`
	PreviousClose      decimal.NullDecimal `json:"previousClose"`
	ChartPreviousClose decimal.NullDecimal `json:"chartPreviousClose"`
	RegularMarketTime  int64               `json:"regularMarketTime"`
}

// ChartError is the error object Yahoo returns in place of a result.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
