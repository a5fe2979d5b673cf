package entity

import "github.com/ethereum/go-ethereum/common"

// TokenInfo holds the details of a specific token.
type TokenInfo struct {
	Address  common.Address
	Symbol   string
	Decimals int
}

// PriceKey is the lowercase hex address used by the price index.
func (t TokenInfo) PriceKey() string {
	return LowerHex(t.Address)
}

// LowerHex returns the address as lowercase 0x-prefixed hex.
func LowerHex(addr common.Address) string {
	return "0x" + common.Bytes2Hex(addr.Bytes())
}

// MasonryTokens pairs the token staked in the Masonry with the token it pays out.
type MasonryTokens struct {
	Stake  TokenInfo
	Reward TokenInfo
}
