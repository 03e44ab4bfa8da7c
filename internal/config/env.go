package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// Ordered fallback list; the first endpoint is tried first
	SolanaRPCURLs []string      `envconfig:"SOLANA_RPC_URLS" default:"https://api.mainnet-beta.solana.com,https://rpc.ankr.com/solana,https://solana-api.projectserum.com"`
	RPCTimeout    time.Duration `envconfig:"RPC_TIMEOUT" default:"10s"`
	RPCRateLimit  float64       `envconfig:"RPC_RATE_LIMIT" default:"8"` // requests per second per endpoint

	SignatureLimit    int           `envconfig:"SIGNATURE_LIMIT" default:"20"`
	DetailConcurrency int           `envconfig:"DETAIL_CONCURRENCY" default:"4"`
	BreakerFailures   uint32        `envconfig:"BREAKER_FAILURES" default:"3"`
	BreakerCooldown   time.Duration `envconfig:"BREAKER_COOLDOWN" default:"30s"`
	SyntheticSeed     int64         `envconfig:"SYNTHETIC_SEED" default:"0"`

	ExplorerURL  string `envconfig:"EXPLORER_URL" default:"https://solscan.io"`
	CoinGeckoURL string `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`

	// Optional .cwt wallet file used as the wallet capability provider
	WalletFilePath string `envconfig:"WALLET_FILE_PATH"`

	LayoutTick time.Duration `envconfig:"LAYOUT_TICK" default:"16ms"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

const maxSignatureLimit = 100

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
// A .env file in the working directory is loaded first if present;
// variables already set in the environment take precedence.
func Init() error {
	loaded, err := Load()
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// Load reads a fresh configuration without touching the global instance.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// normalize trims endpoint entries and clamps the signature limit
func (c *Config) normalize() {
	urls := make([]string, 0, len(c.SolanaRPCURLs))
	for _, u := range c.SolanaRPCURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	c.SolanaRPCURLs = urls

	if c.SignatureLimit > maxSignatureLimit {
		c.SignatureLimit = maxSignatureLimit
	}
	c.ExplorerURL = strings.TrimRight(c.ExplorerURL, "/")
}

// Validate checks configuration values
func (c *Config) Validate() error {
	if len(c.SolanaRPCURLs) == 0 {
		return errors.New("SOLANA_RPC_URLS must contain at least one endpoint")
	}
	if c.SignatureLimit < 1 {
		return errors.New("SIGNATURE_LIMIT must be positive")
	}
	if c.DetailConcurrency < 1 {
		return errors.New("DETAIL_CONCURRENCY must be positive")
	}
	if c.RPCTimeout <= 0 {
		return errors.New("RPC_TIMEOUT must be positive")
	}
	if c.LayoutTick <= 0 {
		return errors.New("LAYOUT_TICK must be positive")
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSolanaRPCURLs returns the ordered endpoint list from configuration
func GetSolanaRPCURLs() []string {
	return Get().SolanaRPCURLs
}
