package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-graph/internal/graph"
	"github.com/AlexZinkM/wallet-graph/internal/layout"
	"github.com/AlexZinkM/wallet-graph/internal/logging"
	"github.com/AlexZinkM/wallet-graph/internal/model"
	"github.com/AlexZinkM/wallet-graph/solana"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	maxDimension  = 10000
)

var errBadViewport = errors.New("width and height must be positive numbers")

// WalletFetcher acquires wallet data for an address
type WalletFetcher interface {
	FetchWalletData(ctx context.Context, address string) (*model.WalletData, error)
}

// WalletHandler serves wallet queries, graphs and layouts
type WalletHandler struct {
	fetcher     WalletFetcher
	prices      solana.PriceSource
	explorerURL string
	layoutOpts  layout.Options
	logger      *zap.Logger
}

// NewWalletHandler creates a new WalletHandler. prices may be nil.
func NewWalletHandler(fetcher WalletFetcher, prices solana.PriceSource, explorerURL string, layoutOpts layout.Options, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		fetcher:     fetcher,
		prices:      prices,
		explorerURL: explorerURL,
		layoutOpts:  layoutOpts,
		logger:      logging.OrNop(logger),
	}
}

// Validate handles GET /api/validate
// @Summary      Validate address
// @Description  Checks that the string is a well-formed Solana address
// @Tags         wallet
// @Produce      json
// @Param        address  query     string  true  "Wallet address"
// @Success      200      {object}  model.ValidateResponse
// @Router       /api/validate [get]
func (h *WalletHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	address := r.URL.Query().Get("address")
	writeJSON(w, http.StatusOK, model.ValidateResponse{
		Address: address,
		Valid:   solana.IsValidAddress(address),
	})
}

// Wallet handles GET /api/wallet
// @Summary      Get wallet data
// @Description  Gets balance and recent transactions, newest first. Falls back to synthetic data when every endpoint fails.
// @Tags         wallet
// @Produce      json
// @Param        address  query     string  true  "Wallet address"
// @Success      200      {object}  model.WalletData
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/wallet [get]
func (h *WalletHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	data, err := h.fetcher.FetchWalletData(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Summary handles GET /api/wallet/summary
// @Summary      Get wallet summary
// @Description  Gets incoming/outgoing statistics and the USD value of the balance
// @Tags         wallet
// @Produce      json
// @Param        address  query     string  true  "Wallet address"
// @Success      200      {object}  model.WalletSummary
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/wallet/summary [get]
func (h *WalletHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	data, err := h.fetcher.FetchWalletData(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solana.SummarizeWithPrice(r.Context(), data, h.prices, h.logger))
}

// QR handles GET /api/wallet/qr
// @Summary      Get explorer QR code
// @Description  Gets a PNG QR code linking to the wallet's explorer page
// @Tags         wallet
// @Produce      png
// @Param        address  query     string  true  "Wallet address"
// @Success      200      {file}    binary
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/wallet/qr [get]
func (h *WalletHandler) QR(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	png, err := solana.ExplorerQR(h.explorerURL, r.URL.Query().Get("address"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// Graph handles GET /api/graph
// @Summary      Get wallet graph
// @Description  Gets the node-link graph of the wallet and its recent counterparties
// @Tags         graph
// @Produce      json
// @Param        address  query     string  true  "Wallet address"
// @Success      200      {object}  model.GraphResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/graph [get]
func (h *WalletHandler) Graph(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	data, err := h.fetcher.FetchWalletData(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.GraphResponse{
		Address:   data.Address,
		Graph:     graph.Build(data),
		Synthetic: data.Synthetic,
		Notice:    data.Notice,
	})
}

// Layout handles GET /api/layout
// @Summary      Get settled layout
// @Description  Runs the force layout to rest and returns node positions
// @Tags         graph
// @Produce      json
// @Param        address  query     string  true   "Wallet address"
// @Param        width    query     number  false  "Viewport width"
// @Param        height   query     number  false  "Viewport height"
// @Success      200      {object}  model.LayoutResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/layout [get]
func (h *WalletHandler) Layout(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	vp, err := parseViewport(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidRequest, err)
		return
	}
	data, err := h.fetcher.FetchWalletData(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		writeFailure(w, err)
		return
	}

	g := graph.Build(data)
	engine, err := layout.New(g, vp, h.layoutOpts)
	if err != nil {
		writeFailure(w, fmt.Errorf("failed to create layout: %w", err))
		return
	}
	defer engine.Stop()
	ticks := engine.Settle(layout.DefaultMaxTicks)

	writeJSON(w, http.StatusOK, model.LayoutResponse{
		Address:   data.Address,
		Width:     vp.Width,
		Height:    vp.Height,
		Ticks:     ticks,
		Graph:     g,
		Positions: engine.Positions(),
		Synthetic: data.Synthetic,
		Notice:    data.Notice,
	})
}

// Demo handles GET /api/demo
// @Summary      Get demo addresses
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.DemoResponse
// @Router       /api/demo [get]
func (h *WalletHandler) Demo(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, model.DemoResponse{Addresses: solana.DemoAddresses})
}

// parseViewport reads width and height, defaulting to 800x600
func parseViewport(r *http.Request) (layout.Viewport, error) {
	vp := layout.Viewport{Width: DefaultWidth, Height: DefaultHeight}
	q := r.URL.Query()
	for _, p := range []struct {
		key string
		dst *float64
	}{{"width", &vp.Width}, {"height", &vp.Height}} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(v > 0 && v <= maxDimension) {
			return layout.Viewport{}, fmt.Errorf("%w: %s=%q", errBadViewport, p.key, raw)
		}
		*p.dst = v
	}
	return vp, nil
}
