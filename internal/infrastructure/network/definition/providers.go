package networkdefinition

import (
	"fmt"
	"strings"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/infrastructure/configloader"
)

// NetworkDefinitionProvider provides network definitions.
type NetworkDefinitionProvider struct {
	logger            port.Logger
	allNetworkDefs    map[string]entity.NetworkDefinition
	activeNetworkDefs []entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Fantom = entity.NetworkDefinition{
		ChainID:             250,
		Name:                "Fantom Opera",
		Identifier:          "fantom",
		NativeSymbol:        "FTM",
		PrimaryRPCURL:       "https://rpc.ftm.tools",
		FallbackRPCURLs:     []string{"https://fantom.publicnode.com", "https://rpc.ankr.com/fantom", "https://1rpc.io/ftm"},
		BlockExplorerURL:    "https://ftmscan.com",
		CoinGeckoPlatformID: "fantom",
	}
	FantomTestnet = entity.NetworkDefinition{
		ChainID:             4002,
		Name:                "Fantom Testnet",
		Identifier:          "fantom_testnet",
		NativeSymbol:        "FTM",
		PrimaryRPCURL:       "https://rpc.testnet.fantom.network",
		FallbackRPCURLs:     []string{"https://fantom-testnet.publicnode.com"},
		BlockExplorerURL:    "https://testnet.ftmscan.com",
		CoinGeckoPlatformID: "fantom",
	}
)

var allKnownDefinitions = map[string]entity.NetworkDefinition{
	Fantom.Identifier:        Fantom,
	FantomTestnet.Identifier: FantomTestnet,
}

// NewNetworkDefinitionProvider activates the configured network, starting from the
// built-in definition with the same identifier and applying non-empty overrides.
// An unknown identifier is accepted when the override carries an RPC URL.
func NewNetworkDefinitionProvider(log port.Logger, node configloader.NetworkNodeConfig) (*NetworkDefinitionProvider, error) {
	p := &NetworkDefinitionProvider{
		logger:         log,
		allNetworkDefs: allKnownDefinitions,
	}

	identifier := strings.ToLower(strings.TrimSpace(node.Identifier))
	def, known := p.allNetworkDefs[identifier]
	if !known {
		if node.RPCURL == "" {
			return nil, fmt.Errorf("unknown network %q and no rpcURL configured", node.Identifier)
		}
		def = entity.NetworkDefinition{Identifier: identifier, Name: identifier}
		p.logger.Warn("Network not in built-in definitions, using configuration only", "identifier", identifier)
	}

	if node.Name != "" {
		def.Name = node.Name
	}
	if node.ChainID != 0 {
		def.ChainID = node.ChainID
	}
	if node.RPCURL != "" {
		def.PrimaryRPCURL = node.RPCURL
		def.FallbackRPCURLs = nil
	}
	if len(node.FallbackRPCURLs) > 0 {
		def.FallbackRPCURLs = append([]string(nil), node.FallbackRPCURLs...)
	}

	p.activeNetworkDefs = []entity.NetworkDefinition{def}
	p.logger.Info("NetworkDefinitionProvider initialized",
		"network", def.Name, "chain_id", def.ChainID, "rpc_primary", def.PrimaryRPCURL, "fallbacks", len(def.FallbackRPCURLs))
	return p, nil
}

// GetAllNetworkDefinitions returns the list of active network definitions.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.activeNetworkDefs))
	copy(defsCopy, p.activeNetworkDefs)
	return defsCopy
}

// GetNetworkDefinitionByName returns an active network definition by its identifier.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.activeNetworkDefs {
		if strings.EqualFold(def.Identifier, identifier) {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}

// Active returns the single tracked network.
func (p *NetworkDefinitionProvider) Active() entity.NetworkDefinition {
	return p.activeNetworkDefs[0]
}
