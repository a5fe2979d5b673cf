package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/pkg/logger"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	testMasonry = "0x8764DE60236C5843D9faEB1B638fbCE962773B67"
	testWallet  = "0x08d6A1d7f3715f442e8e9dbe80CB6f0139c2735e"
)

var testNetwork = entity.NetworkDefinition{ChainID: 250, Name: "Fantom Opera", Identifier: "fantom"}

// fakeEth serves eth_call for the Masonry view methods.
type fakeEth struct {
	abi    abi.ABI
	earned *big.Int
	staked *big.Int
	empty  bool
	calls  int
}

func (f *fakeEth) Call(args map[string]interface{}, block string) (hexutil.Bytes, error) {
	f.calls++
	if f.empty {
		return hexutil.Bytes{}, nil
	}
	raw, _ := args["data"].(string)
	data, err := hexutil.Decode(raw)
	if err != nil || len(data) < 4 {
		return nil, fmt.Errorf("bad calldata %q", raw)
	}
	selector := data[:4]
	switch {
	case bytes.Equal(selector, f.abi.Methods[methodEarned].ID):
		return f.abi.Methods[methodEarned].Outputs.Pack(f.earned)
	case bytes.Equal(selector, f.abi.Methods[methodBalanceOf].ID):
		return f.abi.Methods[methodBalanceOf].Outputs.Pack(f.staked)
	}
	return nil, fmt.Errorf("execution reverted")
}

// staticProvider hands out one client regardless of network.
type staticProvider struct {
	client port.BlockchainClient
	err    error
}

func (p *staticProvider) GetClient(entity.NetworkDefinition) (port.BlockchainClient, error) {
	return p.client, p.err
}

func newTestMasonry(t *testing.T, svc *fakeEth) *MasonryContract {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(MasonryABI))
	if err != nil {
		t.Fatalf("abi.JSON: %v", err)
	}
	svc.abi = parsed

	server := rpc.NewServer()
	if err := server.RegisterName("eth", svc); err != nil {
		t.Fatalf("RegisterName: %v", err)
	}
	rpcClient := rpc.DialInProc(server)
	t.Cleanup(func() {
		rpcClient.Close()
		server.Stop()
	})

	evm := NewEVMClientFromRPC(rpcClient, testNetwork, 5*time.Second)
	m, err := NewMasonryContract(testMasonry, "", testNetwork, &staticProvider{client: evm}, logger.NewSlogAdapter())
	if err != nil {
		t.Fatalf("NewMasonryContract: %v", err)
	}
	return m
}

func TestMasonryPosition(t *testing.T) {
	earned, _ := new(big.Int).SetString("1234567890123456789", 10)
	staked, _ := new(big.Int).SetString("12345678901234567890", 10)
	svc := &fakeEth{earned: earned, staked: staked}
	m := newTestMasonry(t, svc)

	pos, err := m.Position(context.Background(), common.HexToAddress(testWallet))
	if err != nil {
		t.Fatalf("Position error: %v", err)
	}
	if pos.Earned.Cmp(earned) != 0 {
		t.Errorf("Earned = %s, want %s", pos.Earned, earned)
	}
	if pos.Staked.Cmp(staked) != 0 {
		t.Errorf("Staked = %s, want %s", pos.Staked, staked)
	}
	if svc.calls != 2 {
		t.Errorf("eth_call count = %d, want 2", svc.calls)
	}
}

func TestMasonryPositionEmptyReturn(t *testing.T) {
	m := newTestMasonry(t, &fakeEth{empty: true})

	_, err := m.Position(context.Background(), common.HexToAddress(testWallet))
	if !errors.Is(err, entity.ErrRPC) {
		t.Fatalf("Position error = %v, want ErrRPC", err)
	}
}

func TestMasonryPositionProviderError(t *testing.T) {
	dialErr := fmt.Errorf("%w: dial refused", entity.ErrRPC)
	m, err := NewMasonryContract(testMasonry, "", testNetwork, &staticProvider{err: dialErr}, logger.NewSlogAdapter())
	if err != nil {
		t.Fatalf("NewMasonryContract: %v", err)
	}
	if _, err := m.Position(context.Background(), common.HexToAddress(testWallet)); !errors.Is(err, entity.ErrRPC) {
		t.Errorf("Position error = %v, want ErrRPC", err)
	}
}

func TestNewMasonryContractErrors(t *testing.T) {
	tests := []struct {
		name    string
		address string
		abiJSON string
		want    error
	}{
		{"bad address", "0x1234", "", entity.ErrAddressParse},
		{"bad abi", testMasonry, "{not json", entity.ErrAbiParse},
		{"missing method", testMasonry, `[{"inputs":[],"name":"epoch","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`, entity.ErrAbiParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMasonryContract(tt.address, tt.abiJSON, testNetwork, &staticProvider{}, logger.NewSlogAdapter())
			if !errors.Is(err, tt.want) {
				t.Errorf("NewMasonryContract() error = %v, want %v", err, tt.want)
			}
		})
	}
}
