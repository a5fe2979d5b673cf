package port

import (
	"context"

	"masonry_tracker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// BlockchainClient defines the interface for interacting with a blockchain network.
type BlockchainClient interface {
	// BatchCall sends one eth_call per calldata entry to the same contract in a single
	// JSON-RPC batch and returns the raw return data in request order.
	BatchCall(ctx context.Context, to common.Address, calldata [][]byte) ([][]byte, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition
}

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	GetAllNetworkDefinitions() []entity.NetworkDefinition
	GetNetworkDefinitionByName(nameOrIdentifier string) (entity.NetworkDefinition, bool)
}

// BlockchainClientProvider defines the interface for providing blockchain clients.
type BlockchainClientProvider interface {
	GetClient(networkDefinition entity.NetworkDefinition) (BlockchainClient, error)
}

// MasonryReader reads a wallet's raw position from the Masonry contract.
type MasonryReader interface {
	Position(ctx context.Context, wallet common.Address) (entity.MasonryPosition, error)
}
