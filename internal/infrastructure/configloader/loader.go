package configloader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides. Priority: ENV > .env file > YAML > defaults.
const (
	EnvConfigPath      = "CONFIG_PATH"
	EnvTelegramToken   = "TELEGRAM_BOT_TOKEN"
	EnvWalletAddress   = "TRACKER_WALLET_ADDRESS"
	EnvCoinGeckoAPIKey = "COINGECKO_API_KEY"
	EnvLogLevel        = "LOG_LEVEL"
)

// DefaultConfigPath is used when CONFIG_PATH is not set.
const DefaultConfigPath = "config/config.yml"

// ServerConfig holds the optional HTTP API configuration.
type ServerConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Port           string `yaml:"port"`
	ReadTimeout    int    `yaml:"readTimeout"`
	WriteTimeout   int    `yaml:"writeTimeout"`
	IdleTimeout    int    `yaml:"idleTimeout"`
	SwaggerEnabled bool   `yaml:"swaggerEnabled"`
	SwaggerFile    string `yaml:"swaggerFile"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// TelegramConfig holds the chat bot configuration.
type TelegramConfig struct {
	Token                 string `yaml:"token"`
	BotName               string `yaml:"botName"`
	PollTimeoutSeconds    int    `yaml:"pollTimeoutSeconds"`
	CommandTimeoutSeconds int    `yaml:"commandTimeoutSeconds"`
	Debug                 bool   `yaml:"debug"`
}

// TrackerConfig holds the tracked wallet.
type TrackerConfig struct {
	WalletAddress string `yaml:"walletAddress"`
}

// NetworkNodeConfig overrides fields of the built-in network definition.
type NetworkNodeConfig struct {
	Identifier      string   `yaml:"identifier"` // e.g. "fantom"
	Name            string   `yaml:"name"`
	ChainID         uint64   `yaml:"chainID"`
	RPCURL          string   `yaml:"rpcURL"`
	FallbackRPCURLs []string `yaml:"fallbackRPCURLs"`
	RPCTimeoutMs    int64    `yaml:"rpcTimeoutMs"`
	DialTimeoutMs   int64    `yaml:"dialTimeoutMs"`
}

// TokenConfig describes an ERC20 token involved in the Masonry.
type TokenConfig struct {
	Symbol   string `yaml:"symbol"`
	Address  string `yaml:"address"`
	Decimals int    `yaml:"decimals"`
}

// MasonryConfig holds the staking contract configuration.
type MasonryConfig struct {
	Address          string      `yaml:"address"`
	ABIFile          string      `yaml:"abiFile"` // empty means the built-in ABI
	StakeToken       TokenConfig `yaml:"stakeToken"`
	RewardToken      TokenConfig `yaml:"rewardToken"`
	DisplayPrecision int         `yaml:"displayPrecision"`
}

// CoinGeckoConfig holds CoinGecko API specific configurations.
type CoinGeckoConfig struct {
	APIKey               string  `yaml:"apiKey"`
	Pro                  bool    `yaml:"pro"`
	BaseURL              string  `yaml:"baseURL"`
	ClientTimeoutSeconds int     `yaml:"clientTimeoutSeconds"`
	VsCurrency           string  `yaml:"vsCurrency"`
	PlatformID           string  `yaml:"platformID"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
	Burst                int     `yaml:"burst"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig      `yaml:"server"`
	Logging   LoggingConfig     `yaml:"logging"`
	Telegram  TelegramConfig    `yaml:"telegram"`
	Tracker   TrackerConfig     `yaml:"tracker"`
	Network   NetworkNodeConfig `yaml:"network"`
	Masonry   MasonryConfig     `yaml:"masonry"`
	CoinGecko CoinGeckoConfig   `yaml:"coingecko"`
}

// LoadEnvFile loads a .env file into the process environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the YAML configuration file from the given path, applies environment
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML configuration data and applies overrides and defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvTelegramToken); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv(EnvWalletAddress); v != "" {
		cfg.Tracker.WalletAddress = v
	}
	if v := os.Getenv(EnvCoinGeckoAPIKey); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.SwaggerFile == "" {
		cfg.Server.SwaggerFile = "./docs/swagger.yaml"
	}

	if cfg.Telegram.BotName == "" {
		cfg.Telegram.BotName = "tomb tracker bot"
	}
	if cfg.Telegram.PollTimeoutSeconds <= 0 {
		cfg.Telegram.PollTimeoutSeconds = 60
	}
	if cfg.Telegram.CommandTimeoutSeconds <= 0 {
		cfg.Telegram.CommandTimeoutSeconds = 20
	}

	if cfg.Network.Identifier == "" {
		cfg.Network.Identifier = "fantom"
	}
	if cfg.Network.RPCTimeoutMs <= 0 {
		cfg.Network.RPCTimeoutMs = 10000
	}
	if cfg.Network.DialTimeoutMs <= 0 {
		cfg.Network.DialTimeoutMs = 10000
	}

	// Tomb Finance deployment on Fantom Opera
	if cfg.Masonry.Address == "" {
		cfg.Masonry.Address = "0x8764DE60236C5843D9faEB1B638fbCE962773B67"
	}
	if cfg.Masonry.StakeToken.Address == "" {
		cfg.Masonry.StakeToken = TokenConfig{Symbol: "TSHARES", Address: "0x4cdF39285D7Ca8eB3f090fDA0C069ba5F4145B37", Decimals: 18}
	}
	if cfg.Masonry.RewardToken.Address == "" {
		cfg.Masonry.RewardToken = TokenConfig{Symbol: "TOMB", Address: "0x6c021Ae822BEa943b2E66552bDe1D2696a53fbB7", Decimals: 18}
	}
	if cfg.Masonry.StakeToken.Decimals == 0 {
		cfg.Masonry.StakeToken.Decimals = 18
	}
	if cfg.Masonry.RewardToken.Decimals == 0 {
		cfg.Masonry.RewardToken.Decimals = 18
	}
	if cfg.Masonry.DisplayPrecision <= 0 {
		cfg.Masonry.DisplayPrecision = 3
	}

	if cfg.CoinGecko.BaseURL == "" {
		if cfg.CoinGecko.Pro {
			cfg.CoinGecko.BaseURL = "https://pro-api.coingecko.com/api/v3"
		} else {
			cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
		}
	}
	if cfg.CoinGecko.ClientTimeoutSeconds <= 0 {
		cfg.CoinGecko.ClientTimeoutSeconds = 10
	}
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}
	if cfg.CoinGecko.PlatformID == "" {
		cfg.CoinGecko.PlatformID = "fantom"
	}
	if cfg.CoinGecko.RequestsPerSecond <= 0 {
		cfg.CoinGecko.RequestsPerSecond = 0.5 // public tier allows ~30 calls/minute
	}
	if cfg.CoinGecko.Burst <= 0 {
		cfg.CoinGecko.Burst = 2
	}
}

// Validate checks the fields that have no usable default.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Tracker.WalletAddress) == "" {
		problems = append(problems, "tracker.walletAddress (or "+EnvWalletAddress+") is required")
	}
	if c.Masonry.StakeToken.Decimals < 0 || c.Masonry.RewardToken.Decimals < 0 {
		problems = append(problems, "masonry token decimals must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
