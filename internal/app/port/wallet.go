package port

import "masonry_tracker/internal/domain/entity"

// WalletProvider defines the interface for fetching the tracked wallet.
type WalletProvider interface {
	GetWallet() (entity.Wallet, error)
}
