package entity

import (
	"math/big"

	"masonry_tracker/internal/pkg/units"
)

// MasonryPosition is the raw on-chain state of a wallet in the Masonry.
type MasonryPosition struct {
	Earned *big.Int // earned(address), reward token scaled integer
	Staked *big.Int // balanceOf(address), stake token scaled integer
}

// MasonryStats is the valued, display-ready view of a MasonryPosition.
type MasonryStats struct {
	WalletAddress string
	StakeSymbol   string
	RewardSymbol  string

	StakedAmount units.Unit
	RewardAmount units.Unit
	StakePrice   float64
	RewardPrice  float64
	StakedUSD    float64
	RewardsUSD   float64

	Staked       string // e.g. "12.346 TSHARES"
	StakedValue  string // e.g. "18.52 USD"
	Rewards      string
	RewardsValue string

	TotalValueUSD float64
}
