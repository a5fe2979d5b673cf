package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// MasonryABI covers the view methods the tracker reads.
const MasonryABI = `[
{"inputs":[{"internalType":"address","name":"mason","type":"address"}],"name":"earned","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const (
	methodEarned    = "earned"
	methodBalanceOf = "balanceOf"
)

// MasonryContract implements port.MasonryReader.
type MasonryContract struct {
	address  common.Address
	abi      abi.ABI
	netDef   entity.NetworkDefinition
	provider port.BlockchainClientProvider
	logger   port.Logger
}

// NewMasonryContract validates the contract address and ABI. abiJSON may be empty to
// use MasonryABI.
func NewMasonryContract(
	address string,
	abiJSON string,
	netDef entity.NetworkDefinition,
	provider port.BlockchainClientProvider,
	logger port.Logger,
) (*MasonryContract, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: masonry contract address %q", entity.ErrAddressParse, address)
	}
	if strings.TrimSpace(abiJSON) == "" {
		abiJSON = MasonryABI
	}
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrAbiParse, err)
	}
	for _, name := range []string{methodEarned, methodBalanceOf} {
		if _, ok := parsed.Methods[name]; !ok {
			return nil, fmt.Errorf("%w: method %s not found", entity.ErrAbiParse, name)
		}
	}

	return &MasonryContract{
		address:  common.HexToAddress(address),
		abi:      parsed,
		netDef:   netDef,
		provider: provider,
		logger:   logger,
	}, nil
}

// Address returns the contract address.
func (m *MasonryContract) Address() common.Address {
	return m.address
}

// Position reads earned(wallet) and balanceOf(wallet) in one batch.
func (m *MasonryContract) Position(ctx context.Context, wallet common.Address) (entity.MasonryPosition, error) {
	earnedData, err := m.abi.Pack(methodEarned, wallet)
	if err != nil {
		return entity.MasonryPosition{}, fmt.Errorf("%w: pack %s: %w", entity.ErrAbiParse, methodEarned, err)
	}
	stakedData, err := m.abi.Pack(methodBalanceOf, wallet)
	if err != nil {
		return entity.MasonryPosition{}, fmt.Errorf("%w: pack %s: %w", entity.ErrAbiParse, methodBalanceOf, err)
	}

	client, err := m.provider.GetClient(m.netDef)
	if err != nil {
		return entity.MasonryPosition{}, err
	}

	m.logger.Debug("Reading masonry position", "contract", m.address.Hex(), "wallet", wallet.Hex(), "network", m.netDef.Name)
	results, err := client.BatchCall(ctx, m.address, [][]byte{earnedData, stakedData})
	if err != nil {
		return entity.MasonryPosition{}, err
	}
	if len(results) != 2 {
		return entity.MasonryPosition{}, fmt.Errorf("%w: expected 2 results, got %d", entity.ErrRPC, len(results))
	}

	earned, err := m.unpackUint256(methodEarned, results[0])
	if err != nil {
		return entity.MasonryPosition{}, err
	}
	staked, err := m.unpackUint256(methodBalanceOf, results[1])
	if err != nil {
		return entity.MasonryPosition{}, err
	}

	return entity.MasonryPosition{Earned: earned, Staked: staked}, nil
}

func (m *MasonryContract) unpackUint256(method string, data []byte) (*big.Int, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s returned no data from %s (is the contract deployed on %s?)", entity.ErrRPC, method, m.address.Hex(), m.netDef.Name)
	}
	unpacked, err := m.abi.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unpack %s result: %w", entity.ErrRPC, method, err)
	}
	if len(unpacked) == 0 {
		return nil, fmt.Errorf("%w: %s unpack returned no values", entity.ErrRPC, method)
	}
	value, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: %s result is %T, want *big.Int", entity.ErrRPC, method, unpacked[0])
	}
	return value, nil
}
