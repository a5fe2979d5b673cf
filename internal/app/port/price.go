package port

import "context"

// PriceIndex fetches spot prices for token contracts.
type PriceIndex interface {
	// GetTokenPrices returns prices keyed by lowercase token address. Tokens the index
	// has no price for are absent from the map.
	GetTokenPrices(ctx context.Context, platformID string, tokenAddresses []string, vsCurrency string) (map[string]float64, error)
}
