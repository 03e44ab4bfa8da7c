package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Len(t, c.SolanaRPCURLs, 3)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", c.SolanaRPCURLs[0])
	assert.Equal(t, 20, c.SignatureLimit)
	assert.Equal(t, 4, c.DetailConcurrency)
	assert.Equal(t, uint32(3), c.BreakerFailures)
	assert.Equal(t, 30*time.Second, c.BreakerCooldown)
	assert.Equal(t, 16*time.Millisecond, c.LayoutTick)
	assert.Equal(t, "https://solscan.io", c.ExplorerURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SOLANA_RPC_URLS", " https://a.example , ,https://b.example")
	t.Setenv("SIGNATURE_LIMIT", "500")
	t.Setenv("EXPLORER_URL", "https://explorer.example/")
	t.Setenv("LOG_FORMAT", "json")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.SolanaRPCURLs)
	assert.Equal(t, maxSignatureLimit, c.SignatureLimit)
	assert.Equal(t, "https://explorer.example", c.ExplorerURL)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("DETAIL_CONCURRENCY", "many")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			SolanaRPCURLs:     []string{"https://a.example"},
			SignatureLimit:    20,
			DetailConcurrency: 4,
			RPCTimeout:        time.Second,
			LayoutTick:        16 * time.Millisecond,
			LogFormat:         "console",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"no endpoints", func(c *Config) { c.SolanaRPCURLs = nil }, "SOLANA_RPC_URLS"},
		{"zero signatures", func(c *Config) { c.SignatureLimit = 0 }, "SIGNATURE_LIMIT"},
		{"zero concurrency", func(c *Config) { c.DetailConcurrency = 0 }, "DETAIL_CONCURRENCY"},
		{"zero timeout", func(c *Config) { c.RPCTimeout = 0 }, "RPC_TIMEOUT"},
		{"zero tick", func(c *Config) { c.LayoutTick = 0 }, "LAYOUT_TICK"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestInitAndGetters(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("WALLET_FILE_PATH", "/tmp/wallet.cwt")

	require.NoError(t, Init())
	t.Cleanup(func() { cfg = nil })

	assert.Equal(t, "9090", GetPort())
	assert.Equal(t, "/tmp/wallet.cwt", Get().WalletFilePath)
	assert.NotEmpty(t, GetSolanaRPCURLs())
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	prev := cfg
	cfg = nil
	t.Cleanup(func() { cfg = prev })

	assert.Panics(t, func() { Get() })
}
