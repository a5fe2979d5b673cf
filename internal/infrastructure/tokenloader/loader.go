package tokenloader

import (
	"fmt"
	"strings"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/infrastructure/configloader"
	"masonry_tracker/internal/pkg/units"

	"github.com/ethereum/go-ethereum/common"
)

// ConfigTokenLoader implements the port.TokenProvider interface from the masonry config section.
type ConfigTokenLoader struct {
	cfg        configloader.MasonryConfig
	loggerInfo func(msg string, args ...any)
}

// NewTokenLoader creates a new ConfigTokenLoader.
func NewTokenLoader(cfg configloader.MasonryConfig, loggerInfo func(msg string, args ...any)) port.TokenProvider {
	return &ConfigTokenLoader{
		cfg:        cfg,
		loggerInfo: loggerInfo,
	}
}

// GetMasonryTokens validates and returns the stake and reward tokens.
func (l *ConfigTokenLoader) GetMasonryTokens() (entity.MasonryTokens, error) {
	stake, err := toTokenInfo("stakeToken", l.cfg.StakeToken)
	if err != nil {
		return entity.MasonryTokens{}, err
	}
	reward, err := toTokenInfo("rewardToken", l.cfg.RewardToken)
	if err != nil {
		return entity.MasonryTokens{}, err
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Masonry tokens loaded",
			"stake_symbol", stake.Symbol, "stake_address", stake.Address.Hex(),
			"reward_symbol", reward.Symbol, "reward_address", reward.Address.Hex())
	}
	return entity.MasonryTokens{Stake: stake, Reward: reward}, nil
}

func toTokenInfo(field string, tc configloader.TokenConfig) (entity.TokenInfo, error) {
	address := strings.TrimSpace(tc.Address)
	if !common.IsHexAddress(address) {
		return entity.TokenInfo{}, fmt.Errorf("%w: masonry.%s.address %q", entity.ErrAddressParse, field, tc.Address)
	}
	if strings.TrimSpace(tc.Symbol) == "" {
		return entity.TokenInfo{}, fmt.Errorf("masonry.%s.symbol is required", field)
	}
	if tc.Decimals < 0 || tc.Decimals > units.MaxDecimalPlaces {
		return entity.TokenInfo{}, fmt.Errorf("%w: masonry.%s.decimals %d outside 0..%d", units.ErrOverflow, field, tc.Decimals, units.MaxDecimalPlaces)
	}
	return entity.TokenInfo{
		Address:  common.HexToAddress(address),
		Symbol:   tc.Symbol,
		Decimals: tc.Decimals,
	}, nil
}
