package api

import (
	"context"
	"fmt"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/AlexZinkM/wallet-graph/docs"
	"github.com/AlexZinkM/wallet-graph/internal/client"
	"github.com/AlexZinkM/wallet-graph/internal/config"
	"github.com/AlexZinkM/wallet-graph/internal/handler"
	"github.com/AlexZinkM/wallet-graph/internal/layout"
	"github.com/AlexZinkM/wallet-graph/internal/provider"
	"github.com/AlexZinkM/wallet-graph/internal/stream"
	"github.com/AlexZinkM/wallet-graph/solana"
)

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Wallet   *handler.WalletHandler
	Provider *handler.ProviderHandler
	Stream   *handler.StreamHandler
}

// SetupRouter wires the fetcher, price client, provider and session hub
// from configuration and returns the router. Live sessions end when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (http.Handler, *stream.Hub, error) {
	fetcher, err := NewFetcher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	p, err := provider.Detect(cfg.WalletFilePath)
	if err != nil {
		logger.Info("wallet_provider_unavailable", zap.Error(err))
		p = provider.Unavailable{Reason: err}
	}

	layoutOpts := layout.Options{TickInterval: cfg.LayoutTick, Logger: logger}
	prices := client.NewCoinGeckoClient(cfg.CoinGeckoURL)
	hub := stream.NewHub()

	mux := NewMux(Handlers{
		Wallet:   handler.NewWalletHandler(fetcher, prices, cfg.ExplorerURL, layoutOpts, logger),
		Provider: handler.NewProviderHandler(p, logger),
		Stream:   handler.NewStreamHandler(ctx, fetcher, hub, cfg.ExplorerURL, layoutOpts, logger),
	})
	return mux, hub, nil
}

// NewFetcher creates the wallet fetcher over the configured endpoints
func NewFetcher(cfg *config.Config, logger *zap.Logger) (*solana.Fetcher, error) {
	fetcher, err := solana.NewFetcherFromURLs(cfg.SolanaRPCURLs,
		client.ClientOptions{Timeout: cfg.RPCTimeout, RateLimit: cfg.RPCRateLimit},
		solana.FetcherOptions{
			SignatureLimit:    cfg.SignatureLimit,
			DetailConcurrency: cfg.DetailConcurrency,
			BreakerFailures:   cfg.BreakerFailures,
			BreakerCooldown:   cfg.BreakerCooldown,
			Synthesizer:       solana.NewSynthesizer(cfg.SyntheticSeed),
			Logger:            logger,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}
	return fetcher, nil
}

// NewMux registers the routes on a new ServeMux
func NewMux(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/api/validate", h.Wallet.Validate)
	mux.HandleFunc("/api/wallet", h.Wallet.Wallet)
	mux.HandleFunc("/api/wallet/summary", h.Wallet.Summary)
	mux.HandleFunc("/api/wallet/qr", h.Wallet.QR)
	mux.HandleFunc("/api/demo", h.Wallet.Demo)

	// Graph endpoints
	mux.HandleFunc("/api/graph", h.Wallet.Graph)
	mux.HandleFunc("/api/layout", h.Wallet.Layout)
	if h.Stream != nil {
		mux.HandleFunc("/api/ws", h.Stream.Serve)
	}

	// Provider endpoints
	if h.Provider != nil {
		mux.HandleFunc("/api/provider", h.Provider.Status)
		mux.HandleFunc("/api/provider/connect", h.Provider.Connect)
		mux.HandleFunc("/api/provider/disconnect", h.Provider.Disconnect)
	}

	return mux
}
