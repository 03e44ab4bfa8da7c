package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-graph/internal/layout"
	"github.com/AlexZinkM/wallet-graph/internal/model"
	"github.com/AlexZinkM/wallet-graph/solana"
)

const address = "vines1vzrYbzLMRdu58ou5XTby4qAqVRLmqo36NKPTg"

type fakeFetcher struct {
	data *model.WalletData
	err  error
}

func (f *fakeFetcher) FetchWalletData(_ context.Context, addr string) (*model.WalletData, error) {
	if !solana.IsValidAddress(addr) {
		return nil, fmt.Errorf("%w: %q", solana.ErrInvalidAddress, addr)
	}
	return f.data, f.err
}

type fixedPrice float64

func (p fixedPrice) GetSOLtoUSDRate(context.Context) (float64, error) { return float64(p), nil }

func sampleWallet() *model.WalletData {
	amount := 1.5
	return &model.WalletData{
		Address: address,
		Balance: 2,
		Source:  "api.example",
		Transactions: []model.Transaction{
			{Signature: "sig1", Timestamp: 2000, FromAddress: "peerA", ToAddress: address, Amount: &amount},
			{Signature: "sig2", Timestamp: 1000, FromAddress: address, ToAddress: "peerB", Amount: &amount},
		},
	}
}

func newWalletHandler(f WalletFetcher) *WalletHandler {
	return NewWalletHandler(f, fixedPrice(100), "https://solscan.io", layout.Options{}, nil)
}

func serve(h http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestValidate(t *testing.T) {
	t.Parallel()

	h := newWalletHandler(&fakeFetcher{})

	tests := []struct {
		address string
		valid   bool
	}{
		{address, true},
		{"0OIl", false},
		{"", false},
	}
	for _, tt := range tests {
		rec := serve(h.Validate, http.MethodGet, "/api/validate?address="+tt.address)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp model.ValidateResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, tt.valid, resp.Valid, tt.address)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newWalletHandler(&fakeFetcher{data: sampleWallet()})

	for _, fn := range []http.HandlerFunc{h.Validate, h.Wallet, h.Summary, h.QR, h.Graph, h.Layout, h.Demo} {
		rec := serve(fn, http.MethodPost, "/?address="+address)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestWallet(t *testing.T) {
	t.Parallel()

	h := newWalletHandler(&fakeFetcher{data: sampleWallet()})

	rec := serve(h.Wallet, http.MethodGet, "/api/wallet?address="+address)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var data model.WalletData
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&data))
	assert.Equal(t, address, data.Address)
	assert.Len(t, data.Transactions, 2)
}

func TestWallet_Failures(t *testing.T) {
	t.Parallel()

	rec := serve(newWalletHandler(&fakeFetcher{}).Wallet, http.MethodGet, "/api/wallet?address=bad")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.CodeInvalidAddress, decodeError(t, rec).Code)

	rec = serve(newWalletHandler(&fakeFetcher{err: errors.New("boom")}).Wallet, http.MethodGet, "/api/wallet?address="+address)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, model.CodeInternal, decodeError(t, rec).Code)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	h := newWalletHandler(&fakeFetcher{data: sampleWallet()})

	rec := serve(h.Summary, http.MethodGet, "/api/wallet/summary?address="+address)
	require.Equal(t, http.StatusOK, rec.Code)

	var s model.WalletSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	assert.Equal(t, 2, s.Transactions)
	assert.Equal(t, 1, s.Incoming)
	assert.Equal(t, 1, s.Outgoing)
	require.NotNil(t, s.BalanceUSD)
	assert.InDelta(t, 200.0, *s.BalanceUSD, 1e-9)
	assert.Equal(t, int64(2000), s.LastActivity)
}

func TestQR(t *testing.T) {
	t.Parallel()

	h := newWalletHandler(&fakeFetcher{})

	rec := serve(h.QR, http.MethodGet, "/api/wallet/qr?address="+address)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, len(rec.Body.Bytes()) > 8)
	assert.Equal(t, "\x89PNG", string(rec.Body.Bytes()[:4]))

	rec = serve(h.QR, http.MethodGet, "/api/wallet/qr?address=nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGraph(t *testing.T) {
	t.Parallel()

	h := newWalletHandler(&fakeFetcher{data: sampleWallet()})

	rec := serve(h.Graph, http.MethodGet, "/api/graph?address="+address)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.GraphResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	// main wallet, 2 transactions, 2 peers
	assert.Len(t, resp.Graph.Nodes, 5)
	assert.Len(t, resp.Graph.Links, 4)
	assert.Equal(t, address, resp.Graph.Nodes[0].ID)
}

func TestLayout(t *testing.T) {
	t.Parallel()

	h := newWalletHandler(&fakeFetcher{data: sampleWallet()})

	rec := serve(h.Layout, http.MethodGet, "/api/layout?address="+address+"&width=1000&height=500")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.LayoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1000.0, resp.Width)
	assert.Equal(t, 500.0, resp.Height)
	assert.Positive(t, resp.Ticks)
	assert.LessOrEqual(t, resp.Ticks, layout.DefaultMaxTicks)
	require.Len(t, resp.Positions, len(resp.Graph.Nodes))
	for _, p := range resp.Positions {
		assert.False(t, p.Pinned)
		assert.Positive(t, p.Radius)
	}
}

func TestLayout_BadViewport(t *testing.T) {
	t.Parallel()

	h := newWalletHandler(&fakeFetcher{data: sampleWallet()})

	for _, q := range []string{"width=0", "height=-5", "width=abc", "width=NaN", "height=1e9"} {
		rec := serve(h.Layout, http.MethodGet, "/api/layout?address="+address+"&"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Equal(t, model.CodeInvalidRequest, decodeError(t, rec).Code, q)
	}
}

func TestLayout_SyntheticFallback(t *testing.T) {
	t.Parallel()

	fetcher := solana.NewFetcher(nil, solana.FetcherOptions{Synthesizer: solana.NewSynthesizer(7)})
	h := newWalletHandler(fetcher)

	rec := serve(h.Layout, http.MethodGet, "/api/layout?address="+address)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.LayoutResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Synthetic)
	assert.NotEmpty(t, resp.Notice)
	assert.Equal(t, float64(DefaultWidth), resp.Width)
	assert.Equal(t, float64(DefaultHeight), resp.Height)
}

func TestDemo(t *testing.T) {
	t.Parallel()

	rec := serve(newWalletHandler(&fakeFetcher{}).Demo, http.MethodGet, "/api/demo")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.DemoResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, solana.DemoAddresses, resp.Addresses)
}
