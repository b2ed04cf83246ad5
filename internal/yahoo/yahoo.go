package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// SourceName identifies quotes fetched from Yahoo Finance.
const SourceName = "yahoo"

// DefaultBaseURL is the public Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// FinanceClient provides methods for fetching quotes from the Yahoo Finance chart API.
// It wraps an HTTP client and converts the chart meta block into a quote result.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client.
// An empty baseURL selects DefaultBaseURL; tests point it at an httptest server.
//
// Returns:
//   - *FinanceClient: A new client instance ready for use
func NewFinanceClient(baseURL string, timeout time.Duration) *FinanceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FinanceClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the source name used in quote results and logs.
func (c *FinanceClient) Name() string {
	return SourceName
}

// Quote fetches the latest market price of symbol and its change against the previous close.
//
// The method uses the chart endpoint with range=1d, whose meta block carries
// regularMarketPrice and the previous close.
//
// Parameters:
//   - ctx: Bounds the HTTP request
//   - symbol: Yahoo ticker symbol (e.g., "AAPL", "005930.KS")
//
// Returns:
//   - model.QuoteResult: Price, day change percent and source; status is left to the caller
//   - error: If the HTTP request fails, Yahoo reports an error, or no price is returned
func (c *FinanceClient) Quote(ctx context.Context, symbol string) (model.QuoteResult, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))

	response, err := c.queryYahoo(ctx, endpoint)
	if err != nil {
		return model.QuoteResult{}, err
	}
	if len(response.Chart.Result) == 0 {
		return model.QuoteResult{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return ParseQuote(symbol, response.Chart.Result[0].Meta)
}

// ParseQuote converts a chart meta block into a quote result.
//
// The day change is measured against previousClose, falling back to chartPreviousClose.
// Without either close the change is reported as zero.
func ParseQuote(symbol string, meta Meta) (model.QuoteResult, error) {
	if !meta.RegularMarketPrice.Valid || !meta.RegularMarketPrice.Decimal.IsPositive() {
		return model.QuoteResult{}, fmt.Errorf("no market price returned for symbol %s", symbol)
	}
	price := meta.RegularMarketPrice.Decimal

	previous := meta.PreviousClose
	if !previous.Valid || !previous.Decimal.IsPositive() {
		previous = meta.ChartPreviousClose
	}

	dayChange := decimal.Zero
	if previous.Valid && previous.Decimal.IsPositive() {
		dayChange = price.Sub(previous.Decimal).Div(previous.Decimal).Mul(decimal.NewFromInt(100))
	}

	return model.QuoteResult{
		Ticker:           symbol,
		Price:            price,
		DayChangePercent: dayChange,
		Source:           SourceName,
	}, nil
}

// queryYahoo is an internal helper that executes HTTP requests to Yahoo Finance API.
// This method handles the common logic for making requests, reading responses,
// parsing JSON, and checking for API errors.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(ctx context.Context, endpoint string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Response{}, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
		}
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return response, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	return response, nil
}
