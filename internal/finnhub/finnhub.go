// Package finnhub is a small client for the Finnhub market data API.
package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// SourceName identifies quotes fetched from Finnhub.
const SourceName = "finnhub"

// DefaultBaseURL is the Finnhub REST API root.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// ErrNoToken is returned when no API token is configured.
var ErrNoToken = errors.New("finnhub API token not configured")

// TokenFunc returns the API token to use for the next request. An empty token disables the client.
type TokenFunc func(ctx context.Context) string

// StaticToken returns a TokenFunc that always yields token.
func StaticToken(token string) TokenFunc {
	return func(context.Context) string { return token }
}

// Client calls the Finnhub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      TokenFunc
}

// NewClient creates a Finnhub client. token is consulted on every request so a key
// stored at runtime takes effect without a restart.
func NewClient(baseURL string, timeout time.Duration, token TokenFunc) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if token == nil {
		token = StaticToken("")
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// Name returns the source name used in quote results and logs.
func (c *Client) Name() string {
	return SourceName
}

// quoteResponse is the /quote payload: c is the current price, dp the percent change.
type quoteResponse struct {
	Current       decimal.Decimal `json:"c"`
	Change        decimal.Decimal `json:"d"`
	ChangePercent decimal.Decimal `json:"dp"`
	PreviousClose decimal.Decimal `json:"pc"`
	Timestamp     int64           `json:"t"`
}

// Quote fetches the current price of symbol.
// Finnhub answers unknown symbols with an all-zero payload, which is reported as an error.
func (c *Client) Quote(ctx context.Context, symbol string) (model.QuoteResult, error) {
	var q quoteResponse
	if err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &q); err != nil {
		return model.QuoteResult{}, err
	}
	if !q.Current.IsPositive() {
		return model.QuoteResult{}, fmt.Errorf("no quote returned for symbol %s", symbol)
	}
	return model.QuoteResult{
		Ticker:           symbol,
		Price:            q.Current,
		DayChangePercent: q.ChangePercent,
		Source:           SourceName,
	}, nil
}

// GeneralNews returns the latest general market headlines.
func (c *Client) GeneralNews(ctx context.Context) ([]model.NewsItem, error) {
	news := []model.NewsItem{}
	if err := c.get(ctx, "/news", url.Values{"category": {"general"}}, &news); err != nil {
		return nil, err
	}
	return news, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	token := c.token(ctx)
	if token == "" {
		return ErrNoToken
	}
	params.Set("token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("finnhub %s returned status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode finnhub %s response: %w", path, err)
	}
	return nil
}
