package restapi

import (
	"errors"
	"net/http"

	"masonry_tracker/internal/app/port"
	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/infrastructure/walletloader"
	"masonry_tracker/internal/pkg/units"

	"github.com/gin-gonic/gin"
)

// APIPosition is one side of the Masonry position.
type APIPosition struct {
	Symbol       string  `json:"symbol"`
	Amount       string  `json:"amount"` // exact decimal
	Display      string  `json:"display"`
	PriceUSD     float64 `json:"price_usd"`
	ValueUSD     float64 `json:"value_usd"`
	ValueDisplay string  `json:"value_display"`
}

// APIStatsResponse is the body of GET /api/v1/stats.
type APIStatsResponse struct {
	WalletAddress   string      `json:"wallet_address"`
	Staked          APIPosition `json:"staked"`
	Rewards         APIPosition `json:"rewards"`
	TotalRewardsUSD float64     `json:"total_rewards_usd"`
	TotalValueUSD   float64     `json:"total_value_usd"`
}

// APIError is the body of every non-2xx response.
type APIError struct {
	Error string `json:"error"`
}

// StatsHandler serves Masonry stats over HTTP.
type StatsHandler struct {
	statsService port.StatsService
	wallets      port.WalletProvider
	logger       port.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss port.StatsService, wp port.WalletProvider, l port.Logger) *StatsHandler {
	return &StatsHandler{statsService: ss, wallets: wp, logger: l}
}

// GetStatsHandler returns the stats of the configured wallet, or of ?wallet=0x... when given.
func (h *StatsHandler) GetStatsHandler(c *gin.Context) {
	var (
		wallet entity.Wallet
		err    error
	)
	if addr := c.Query("wallet"); addr != "" {
		wallet, err = walletloader.ParseWallet(addr)
	} else {
		wallet, err = h.wallets.GetWallet()
	}
	if err != nil {
		c.JSON(statusFor(err), APIError{Error: err.Error()})
		return
	}

	stats, err := h.statsService.MasonryStats(c.Request.Context(), wallet)
	if err != nil {
		h.logger.Error("Stats request failed", "wallet", wallet.Address.Hex(), "error", err)
		c.JSON(statusFor(err), APIError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toAPIStats(stats))
}

// HealthHandler reports liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toAPIStats(s entity.MasonryStats) APIStatsResponse {
	return APIStatsResponse{
		WalletAddress: s.WalletAddress,
		Staked: APIPosition{
			Symbol:       s.StakeSymbol,
			Amount:       s.StakedAmount.Decimal().String(),
			Display:      s.Staked,
			PriceUSD:     s.StakePrice,
			ValueUSD:     s.StakedUSD,
			ValueDisplay: s.StakedValue,
		},
		Rewards: APIPosition{
			Symbol:       s.RewardSymbol,
			Amount:       s.RewardAmount.Decimal().String(),
			Display:      s.Rewards,
			PriceUSD:     s.RewardPrice,
			ValueUSD:     s.RewardsUSD,
			ValueDisplay: s.RewardsValue,
		},
		TotalRewardsUSD: s.RewardsUSD,
		TotalValueUSD:   s.TotalValueUSD,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrAddressParse):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrRPC), errors.Is(err, entity.ErrPriceFetch), errors.Is(err, entity.ErrPriceUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, units.ErrOverflow), errors.Is(err, units.ErrUnitParse):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
