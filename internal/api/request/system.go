package request

// SetProviderKeyRequest stores the API key of a market data provider.
type SetProviderKeyRequest struct {
	APIKey string `json:"apiKey"`
}
