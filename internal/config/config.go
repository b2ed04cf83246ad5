package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Quote cache TTL bounds. Prices older than the maximum are never served.
const (
	MinQuoteCacheTTL = time.Minute
	MaxQuoteCacheTTL = 5 * time.Minute
)

// Transaction sources.
const (
	SourceSQLite = "sqlite"
	SourceJSON   = "json"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	Source   SourceConfig
	Quote    QuoteConfig
	Finnhub  FinnhubConfig
	Yahoo    YahooConfig
	Security SecurityConfig
	Currency string // ISO code used to format money in messages
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// SourceConfig selects where the transaction log is read from.
type SourceConfig struct {
	Kind         string // sqlite or json
	MockDataPath string
	JSONPath     string // Location of the transactions array inside the mock file
}

// QuoteConfig controls the price source adapter.
type QuoteConfig struct {
	Providers       []string
	CacheTTL        time.Duration
	LookupTimeout   time.Duration
	RefreshSchedule string
	SymbolMap       map[string]string
}

// FinnhubConfig holds Finnhub API settings.
type FinnhubConfig struct {
	APIKey  string
	BaseURL string
}

// YahooConfig holds Yahoo Finance settings.
type YahooConfig struct {
	BaseURL string
}

// SecurityConfig holds the key used to encrypt stored provider credentials.
type SecurityConfig struct {
	EncryptionKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cacheTTL, err := getDuration("QUOTE_CACHE_TTL", time.Minute)
	if err != nil {
		return nil, err
	}
	lookupTimeout, err := getDuration("QUOTE_LOOKUP_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	symbolMap, err := ParseSymbolMap(getEnv("SYMBOL_MAP", ""))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_dashboard.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost")),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getBool("LOG_PRETTY", false),
		},
		Source: SourceConfig{
			Kind:         strings.ToLower(getEnv("TRANSACTION_SOURCE", SourceSQLite)),
			MockDataPath: getEnv("MOCK_DATA_PATH", "./data/mock_transactions.json"),
			JSONPath:     getEnv("MOCK_DATA_JSONPATH", "$.transactions"),
		},
		Quote: QuoteConfig{
			Providers:       splitList(strings.ToLower(getEnv("QUOTE_PROVIDERS", "yahoo,finnhub"))),
			CacheTTL:        ClampCacheTTL(cacheTTL),
			LookupTimeout:   lookupTimeout,
			RefreshSchedule: getEnv("QUOTE_REFRESH_SCHEDULE", "@every 1m"),
			SymbolMap:       symbolMap,
		},
		Finnhub: FinnhubConfig{
			APIKey:  getEnv("FINNHUB_API_KEY", ""),
			BaseURL: getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		},
		Yahoo: YahooConfig{
			BaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		},
		Security: SecurityConfig{
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		},
		Currency: strings.ToUpper(getEnv("CURRENCY", "KRW")),
	}

	if config.Source.Kind != SourceSQLite && config.Source.Kind != SourceJSON {
		return nil, fmt.Errorf("invalid TRANSACTION_SOURCE %q: must be %s or %s", config.Source.Kind, SourceSQLite, SourceJSON)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// ClampCacheTTL keeps the quote cache TTL within MinQuoteCacheTTL..MaxQuoteCacheTTL.
func ClampCacheTTL(ttl time.Duration) time.Duration {
	if ttl < MinQuoteCacheTTL {
		return MinQuoteCacheTTL
	}
	if ttl > MaxQuoteCacheTTL {
		return MaxQuoteCacheTTL
	}
	return ttl
}

// ParseSymbolMap parses "Asset Name=TICKER,Other=TICK2" into a map keyed by asset name.
func ParseSymbolMap(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range splitList(s) {
		name, ticker, ok := strings.Cut(pair, "=")
		name, ticker = strings.TrimSpace(name), strings.TrimSpace(ticker)
		if !ok || name == "" || ticker == "" {
			return nil, fmt.Errorf("invalid SYMBOL_MAP entry %q: expected name=TICKER", pair)
		}
		out[name] = ticker
	}
	return out, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
