package service

import (
	"context"
	"fmt"
	"time"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/infrastructure/configloader"
	"masonry_tracker/internal/pkg/metrics"
	"masonry_tracker/internal/pkg/units"

	"golang.org/x/sync/errgroup"
)

const defaultDisplayPrecision = 3

// Operation names carried by entity.StatsError.
const (
	OpReadPosition = "read masonry position"
	OpFetchPrices  = "fetch token prices"
	OpLookupPrice  = "look up token price"
	OpConvert      = "convert token amount"
)

// StatsServiceImpl implements port.StatsService.
type StatsServiceImpl struct {
	masonry    port.MasonryReader
	prices     port.PriceIndex
	tokens     entity.MasonryTokens
	platformID string
	vsCurrency string
	precision  int
	logger     port.Logger
}

// NewStatsService resolves the Masonry tokens once and returns a ready service.
func NewStatsService(
	mr port.MasonryReader,
	pi port.PriceIndex,
	tp port.TokenProvider,
	l port.Logger,
	cfg *configloader.Config,
) (*StatsServiceImpl, error) {
	tokens, err := tp.GetMasonryTokens()
	if err != nil {
		return nil, fmt.Errorf("failed to load masonry tokens: %w", err)
	}
	precision := cfg.Masonry.DisplayPrecision
	if precision <= 0 {
		precision = defaultDisplayPrecision
	}
	return &StatsServiceImpl{
		masonry:    mr,
		prices:     pi,
		tokens:     tokens,
		platformID: cfg.CoinGecko.PlatformID,
		vsCurrency: cfg.CoinGecko.VsCurrency,
		precision:  precision,
		logger:     l,
	}, nil
}

// Tokens returns the stake and reward tokens the service values.
func (s *StatsServiceImpl) Tokens() entity.MasonryTokens {
	return s.tokens
}

// MasonryStats reads the wallet's Masonry position and the token prices concurrently
// and values both. Any failure aborts the request; no partial stats are returned.
func (s *StatsServiceImpl) MasonryStats(ctx context.Context, wallet entity.Wallet) (entity.MasonryStats, error) {
	start := time.Now()
	defer func() { metrics.StatsDuration.Observe(time.Since(start).Seconds()) }()

	walletHex := wallet.Address.Hex()
	s.logger.Debug("Fetching masonry stats", "wallet", walletHex)

	var (
		position entity.MasonryPosition
		prices   map[string]float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.masonry.Position(gctx, wallet.Address)
		if err != nil {
			return &entity.StatsError{Op: OpReadPosition, WalletAddress: walletHex, Err: err}
		}
		position = p
		return nil
	})
	g.Go(func() error {
		p, err := s.prices.GetTokenPrices(gctx, s.platformID, s.priceKeys(), s.vsCurrency)
		if err != nil {
			return &entity.StatsError{Op: OpFetchPrices, WalletAddress: walletHex, Err: err}
		}
		prices = p
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to fetch masonry stats", "wallet", walletHex, "error", err)
		return entity.MasonryStats{}, err
	}

	stakePrice, err := s.lookupPrice(prices, s.tokens.Stake, walletHex)
	if err != nil {
		return entity.MasonryStats{}, err
	}
	rewardPrice, err := s.lookupPrice(prices, s.tokens.Reward, walletHex)
	if err != nil {
		return entity.MasonryStats{}, err
	}

	staked, err := units.FromScaledInteger(position.Staked, s.tokens.Stake.Decimals)
	if err != nil {
		return entity.MasonryStats{}, &entity.StatsError{Op: OpConvert, WalletAddress: walletHex, Err: err}
	}
	rewards, err := units.FromScaledInteger(position.Earned, s.tokens.Reward.Decimals)
	if err != nil {
		return entity.MasonryStats{}, &entity.StatsError{Op: OpConvert, WalletAddress: walletHex, Err: err}
	}

	stakedUSD := units.ValueUSD(staked, stakePrice)
	rewardsUSD := units.ValueUSD(rewards, rewardPrice)

	stats := entity.MasonryStats{
		WalletAddress: walletHex,
		StakeSymbol:   s.tokens.Stake.Symbol,
		RewardSymbol:  s.tokens.Reward.Symbol,
		StakedAmount:  staked,
		RewardAmount:  rewards,
		StakePrice:    stakePrice,
		RewardPrice:   rewardPrice,
		StakedUSD:     stakedUSD,
		RewardsUSD:    rewardsUSD,
		Staked:        staked.StringFixed(s.precision) + " " + s.tokens.Stake.Symbol,
		StakedValue:   units.FormatUSD(stakedUSD),
		Rewards:       rewards.StringFixed(s.precision) + " " + s.tokens.Reward.Symbol,
		RewardsValue:  units.FormatUSD(rewardsUSD),
		TotalValueUSD: stakedUSD + rewardsUSD,
	}
	s.logger.Info("Masonry stats fetched", "wallet", walletHex, "staked", stats.Staked, "rewards", stats.Rewards)
	return stats, nil
}

func (s *StatsServiceImpl) priceKeys() []string {
	stakeKey, rewardKey := s.tokens.Stake.PriceKey(), s.tokens.Reward.PriceKey()
	if stakeKey == rewardKey {
		return []string{stakeKey}
	}
	return []string{stakeKey, rewardKey}
}

func (s *StatsServiceImpl) lookupPrice(prices map[string]float64, token entity.TokenInfo, walletHex string) (float64, error) {
	price, ok := prices[token.PriceKey()]
	if !ok {
		s.logger.Warn("Price index has no quote for token", "symbol", token.Symbol, "address", token.Address.Hex())
		return 0, &entity.StatsError{
			Op:            OpLookupPrice,
			WalletAddress: walletHex,
			Err:           fmt.Errorf("%w: %s (%s)", entity.ErrPriceUnavailable, token.Symbol, token.PriceKey()),
		}
	}
	return price, nil
}
