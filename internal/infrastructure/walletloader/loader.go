package walletloader

import (
	"fmt"
	"strings"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
)

// ConfigWalletLoader implements the port.WalletProvider interface for the configured wallet.
type ConfigWalletLoader struct {
	address    string
	loggerInfo func(msg string, args ...any)
}

// NewWalletLoader creates a new ConfigWalletLoader.
func NewWalletLoader(address string, loggerInfo func(msg string, args ...any)) port.WalletProvider {
	return &ConfigWalletLoader{
		address:    address,
		loggerInfo: loggerInfo,
	}
}

// GetWallet parses the configured wallet address.
func (l *ConfigWalletLoader) GetWallet() (entity.Wallet, error) {
	wallet, err := ParseWallet(l.address)
	if err != nil {
		return entity.Wallet{}, err
	}
	if l.loggerInfo != nil {
		l.loggerInfo("Tracked wallet loaded", "address", wallet.Address.Hex())
	}
	return wallet, nil
}

// ParseWallet accepts a 0x-prefixed 20-byte hex address in any letter case.
func ParseWallet(address string) (entity.Wallet, error) {
	address = strings.TrimSpace(address)
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		return entity.Wallet{}, fmt.Errorf("%w: wallet address %q must start with 0x", entity.ErrAddressParse, address)
	}
	if !common.IsHexAddress(address) {
		return entity.Wallet{}, fmt.Errorf("%w: wallet address %q", entity.ErrAddressParse, address)
	}
	return entity.Wallet{Address: common.HexToAddress(address)}, nil
}
