package entity

import "github.com/ethereum/go-ethereum/common"

// Wallet is a tracked wallet address.
type Wallet struct {
	Address common.Address
}
