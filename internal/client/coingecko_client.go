package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"masonry_tracker/internal/domain/entity"
	"masonry_tracker/internal/infrastructure/configloader"
	"masonry_tracker/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const providerCoinGecko = "coingecko"

// CoinGeckoClient defines the interface for the CoinGecko token price endpoint.
type CoinGeckoClient interface {
	GetTokenPrices(ctx context.Context, platformID string, tokenAddresses []string, vsCurrency string) (map[string]float64, error)
}

// coinGeckoClientImpl is the implementation of CoinGeckoClient.
type coinGeckoClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	pro     bool
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewCoinGeckoClient creates a new CoinGecko client. A non-positive RequestsPerSecond
// disables throttling.
func NewCoinGeckoClient(cfg configloader.CoinGeckoConfig, logger *zap.Logger) CoinGeckoClient {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &coinGeckoClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		pro:     cfg.Pro,
		timeout: time.Duration(cfg.ClientTimeoutSeconds) * time.Second,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.Named("CoinGeckoClient"),
	}
}

// GetTokenPrices implements the CoinGeckoClient interface. Keys of the returned map are
// lowercase token addresses; tokens without a vsCurrency quote are left out.
func (c *coinGeckoClientImpl) GetTokenPrices(ctx context.Context, platformID string, tokenAddresses []string, vsCurrency string) (prices map[string]float64, err error) {
	if len(tokenAddresses) == 0 {
		return nil, fmt.Errorf("%w: tokenAddresses cannot be empty", entity.ErrPriceFetch)
	}
	vsCurrency = strings.ToLower(vsCurrency)

	start := time.Now()
	defer func() {
		metrics.PriceRequestDuration.WithLabelValues(providerCoinGecko, metrics.Result(err)).Observe(time.Since(start).Seconds())
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %w", entity.ErrPriceFetch, err)
	}

	addresses := make([]string, len(tokenAddresses))
	for i, addr := range tokenAddresses {
		addresses[i] = strings.ToLower(addr)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(fmt.Sprintf("%s/simple/token_price/%s", c.baseURL, platformID))
	req.URI().QueryArgs().Add("contract_addresses", strings.Join(addresses, ","))
	req.URI().QueryArgs().Add("vs_currencies", vsCurrency)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		if c.pro {
			req.Header.Set("x-cg-pro-api-key", c.apiKey)
		} else {
			req.Header.Set("x-cg-demo-api-key", c.apiKey)
		}
	}
	requestURL := req.URI().String()

	c.logger.Debug("Requesting token prices from CoinGecko", zap.String("url", requestURL))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		c.logger.Error("Failed to execute request to CoinGecko", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("%w: request to %s: %w", entity.ErrPriceFetch, requestURL, err)
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		var apiErr entity.CoinGeckoError
		msg := string(rawBody)
		if jsonErr := json.Unmarshal(rawBody, &apiErr); jsonErr == nil && apiErr.Message() != "" {
			msg = apiErr.Message()
		}
		c.logger.Error("CoinGecko API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.String("message", msg),
		)
		return nil, fmt.Errorf("%w: CoinGecko returned status %d: %s", entity.ErrPriceFetch, resp.StatusCode(), msg)
	}

	var body entity.TokenPriceResponse
	if err := json.Unmarshal(rawBody, &body); err != nil {
		c.logger.Error("Failed to unmarshal CoinGecko response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: failed to unmarshal CoinGecko response: %w", entity.ErrPriceFetch, err)
	}

	prices = make(map[string]float64, len(body))
	for addr, quotes := range body {
		price, ok := quotes[vsCurrency]
		if !ok {
			c.logger.Warn("CoinGecko returned no quote for token", zap.String("token", addr), zap.String("currency", vsCurrency))
			continue
		}
		prices[strings.ToLower(addr)] = price
	}

	c.logger.Debug("Fetched token prices from CoinGecko",
		zap.String("platform", platformID),
		zap.Int("requested", len(addresses)),
		zap.Int("priced", len(prices)))
	return prices, nil
}
