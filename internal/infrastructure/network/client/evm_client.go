package client

import (
	"context"
	"fmt"
	"time"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// EVMClient implements the port.BlockchainClient interface for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
}

// NewEVMClient connects to the primary RPC of netDef, then to each fallback in order.
func NewEVMClient(netDef entity.NetworkDefinition, connectionTimeout time.Duration, rpcCallTimeout time.Duration) (port.BlockchainClient, error) {
	rpcURLs := append([]string{netDef.PrimaryRPCURL}, netDef.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range rpcURLs {
		if rpcURL == "" {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		client, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return &EVMClient{ethClient: client, netDef: netDef, rpcCallTimeout: rpcCallTimeout}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no RPC URL configured")
	}

	return nil, fmt.Errorf("%w: all RPC connection attempts failed for network %s: %w", entity.ErrRPC, netDef.Name, lastErr)
}

// NewEVMClientFromRPC wraps an already connected RPC client.
func NewEVMClientFromRPC(rpcClient *rpc.Client, netDef entity.NetworkDefinition, rpcCallTimeout time.Duration) *EVMClient {
	return &EVMClient{ethClient: ethclient.NewClient(rpcClient), netDef: netDef, rpcCallTimeout: rpcCallTimeout}
}

// BatchCall sends one eth_call per calldata entry against the latest block in a
// single JSON-RPC batch.
func (c *EVMClient) BatchCall(ctx context.Context, to common.Address, calldata [][]byte) (results [][]byte, err error) {
	if len(calldata) == 0 {
		return [][]byte{}, nil
	}

	start := time.Now()
	defer func() {
		metrics.RPCDuration.WithLabelValues(c.netDef.Identifier, metrics.Result(err)).Observe(time.Since(start).Seconds())
	}()

	batchElems := make([]rpc.BatchElem, len(calldata))
	for i, data := range calldata {
		callArgs := map[string]interface{}{
			"to":   to,
			"data": hexutil.Bytes(data),
		}
		batchElems[i] = rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callArgs, "latest"},
			Result: new(hexutil.Bytes),
		}
	}

	rpcCallCtx := ctx
	if c.rpcCallTimeout > 0 {
		var cancel context.CancelFunc
		rpcCallCtx, cancel = context.WithTimeout(ctx, c.rpcCallTimeout)
		defer cancel()
	}

	if err := c.ethClient.Client().BatchCallContext(rpcCallCtx, batchElems); err != nil {
		return nil, fmt.Errorf("%w: batch eth_call to %s on %s failed: %w", entity.ErrRPC, to.Hex(), c.netDef.Name, err)
	}

	results = make([][]byte, len(batchElems))
	for i, elem := range batchElems {
		if elem.Error != nil {
			return nil, fmt.Errorf("%w: eth_call %d to %s on %s failed: %w", entity.ErrRPC, i, to.Hex(), c.netDef.Name, elem.Error)
		}
		result, ok := elem.Result.(*hexutil.Bytes)
		if !ok || result == nil {
			return nil, fmt.Errorf("%w: eth_call %d to %s returned an unexpected result type", entity.ErrRPC, i, to.Hex())
		}
		results[i] = *result
	}
	return results, nil
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.ethClient.Close()
}
