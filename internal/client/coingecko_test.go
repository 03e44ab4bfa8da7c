package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "solana", r.URL.Query().Get("ids"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCoinGecko_GetSOLtoUSDRate(t *testing.T) {
	t.Parallel()

	srv := priceServer(t, http.StatusOK, `{"solana":{"usd":142.5}}`)

	rate, err := NewCoinGeckoClient(srv.URL + "/").GetSOLtoUSDRate(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 142.5, rate, 1e-9)
}

func TestCoinGecko_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status", http.StatusTooManyRequests, `{}`},
		{"malformed", http.StatusOK, `{"solana":`},
		{"missing price", http.StatusOK, `{"solana":{}}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := priceServer(t, tt.status, tt.body)

			_, err := NewCoinGeckoClient(srv.URL).GetSOLtoUSDRate(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestNewCoinGeckoClient_DefaultURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, coingeckoAPI, NewCoinGeckoClient("").baseURL)
}
