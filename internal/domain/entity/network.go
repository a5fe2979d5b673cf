package entity

// NetworkDefinition holds the configuration for a specific blockchain network.
type NetworkDefinition struct {
	ChainID          uint64   `json:"chainId" yaml:"chainId"`
	Name             string   `json:"name" yaml:"name"`
	Identifier       string   `json:"identifier" yaml:"identifier"` // e.g. "fantom"
	NativeSymbol     string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	PrimaryRPCURL    string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs  []string `json:"fallbackRpcUrls" yaml:"fallbackRpcUrls"`
	BlockExplorerURL string   `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	// CoinGeckoPlatformID is the asset platform used by /simple/token_price.
	CoinGeckoPlatformID string `json:"coinGeckoPlatformId" yaml:"coinGeckoPlatformId"`
}
