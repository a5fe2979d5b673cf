package client

import (
	"fmt"
	"sync"
	"time"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/infrastructure/configloader"
)

type dialFunc func(netDef entity.NetworkDefinition, connectionTimeout, rpcCallTimeout time.Duration) (port.BlockchainClient, error)

// evmClientProvider implements the port.BlockchainClientProvider interface.
// A failed dial is not cached, so the next request retries.
type evmClientProvider struct {
	clients           map[string]port.BlockchainClient
	mu                sync.Mutex
	loggerInfo        func(msg string, args ...any)
	loggerError       func(msg string, args ...any)
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
	dial              dialFunc
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(
	cfg *configloader.Config,
	loggerInfo func(msg string, args ...any),
	loggerError func(msg string, args ...any),
) port.BlockchainClientProvider {
	return &evmClientProvider{
		clients:           make(map[string]port.BlockchainClient),
		loggerInfo:        loggerInfo,
		loggerError:       loggerError,
		connectionTimeout: time.Duration(cfg.Network.DialTimeoutMs) * time.Millisecond,
		rpcCallTimeout:    time.Duration(cfg.Network.RPCTimeoutMs) * time.Millisecond,
		dial:              NewEVMClient,
	}
}

// GetClient retrieves a blockchain client for the given network definition.
// It caches clients to avoid reconnecting repeatedly.
func (p *evmClientProvider) GetClient(netDef entity.NetworkDefinition) (port.BlockchainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	clientKey := fmt.Sprintf("%d-%s", netDef.ChainID, netDef.Identifier)
	if client, exists := p.clients[clientKey]; exists {
		return client, nil
	}

	p.loggerInfo("Creating new EVM client", "network", netDef.Name, "rpc_primary", netDef.PrimaryRPCURL)
	newClient, err := p.dial(netDef, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.loggerError("Failed to create EVM client", "network", netDef.Name, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	p.clients[clientKey] = newClient
	p.loggerInfo("Successfully created and cached new EVM client", "network", netDef.Name)
	return newClient, nil
}
