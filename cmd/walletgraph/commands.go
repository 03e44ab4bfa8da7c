package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-graph/internal/api"
	"github.com/AlexZinkM/wallet-graph/internal/client"
	"github.com/AlexZinkM/wallet-graph/internal/common"
	"github.com/AlexZinkM/wallet-graph/internal/config"
	"github.com/AlexZinkM/wallet-graph/internal/graph"
	"github.com/AlexZinkM/wallet-graph/internal/layout"
	"github.com/AlexZinkM/wallet-graph/internal/logging"
	"github.com/AlexZinkM/wallet-graph/solana"
)

// Version is set at build time via ldflags.
var Version = "dev"

const shutdownTimeout = 10 * time.Second


// CLI is the command tree
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`

	Serve    ServeCmd    `cmd:"" help:"Start the HTTP and websocket API"`
	Validate ValidateCmd `cmd:"" help:"Check that an address is a well-formed Solana address"`
	Fetch    FetchCmd    `cmd:"" help:"Fetch balance and recent transactions of a wallet"`
	Graph    GraphCmd    `cmd:"" help:"Print the transaction graph of a wallet as JSON"`
	Layout   LayoutCmd   `cmd:"" help:"Run the force layout to rest and print node positions as JSON"`

	out io.Writer
}

func NewCLI(out io.Writer) *CLI {
	return &CLI{out: out}
}

// Execute parses args and runs the selected command
func (c *CLI) Execute(args []string) error {
	parser, err := kong.New(c,
		kong.Name("walletgraph"),
		kong.Description("Solana wallet network explorer"),
		kong.UsageOnError(),
		kong.Writers(c.out, c.out),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": Version},
		kong.Bind(c),
	)
	if err != nil {
		return err
	}
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kongCtx.Run()
}

// SourceFlags select where wallet data comes from
type SourceFlags struct {
	Offline bool `help:"Skip the ledger endpoints and use synthetic data"`
}

func (s SourceFlags) fetcher(logger *zap.Logger) (*solana.Fetcher, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if s.Offline {
		return solana.NewFetcher(nil, solana.FetcherOptions{
			Synthesizer: solana.NewSynthesizer(cfg.SyntheticSeed),
			Logger:      logger,
		}), nil
	}
	return api.NewFetcher(cfg, logger)
}

// fetcherFor validates address before any configuration is read
func (s SourceFlags) fetcherFor(address string) (*solana.Fetcher, error) {
	if !solana.IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %q", solana.ErrInvalidAddress, address)
	}
	return s.fetcher(zap.NewNop())
}

// ServeCmd runs the API server
type ServeCmd struct{}

func (c *ServeCmd) Run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router, hub, err := api.SetupRouter(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started",
			zap.String("addr", srv.Addr),
			zap.Strings("endpoints", config.GetSolanaRPCURLs()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server_stopping")
	hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// ValidateCmd checks an address
type ValidateCmd struct {
	Address string `arg:"" help:"Wallet address"`
}

func (c *ValidateCmd) Run(cli *CLI) error {
	if !solana.IsValidAddress(c.Address) {
		color.New(color.FgRed).Fprintf(cli.out, "✗ %s is not a valid Solana address\n", c.Address)
		return fmt.Errorf("%w: %q", solana.ErrInvalidAddress, c.Address)
	}
	color.New(color.FgGreen).Fprintf(cli.out, "✓ %s is a valid Solana address\n", c.Address)
	return nil
}

// FetchCmd prints wallet data
type FetchCmd struct {
	SourceFlags `embed:""`

	Address string `arg:"" help:"Wallet address"`
	JSON    bool   `help:"Print raw JSON"`
	Price   bool   `help:"Include the USD value of the balance"`
}

func (c *FetchCmd) Run(cli *CLI) error {
	ctx := context.Background()
	fetcher, err := c.fetcherFor(c.Address)
	if err != nil {
		return err
	}
	data, err := fetcher.FetchWalletData(ctx, c.Address)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(cli.out, data)
	}

	var prices solana.PriceSource
	if c.Price {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		prices = client.NewCoinGeckoClient(cfg.CoinGeckoURL)
	}
	summary := solana.SummarizeWithPrice(ctx, data, prices, nil)

	if data.Synthetic {
		color.New(color.FgYellow).Fprintf(cli.out, "! %s\n", data.Notice)
	}
	color.New(color.FgGreen).Fprintf(cli.out, "Wallet %s\n", common.FormatAddress(data.Address))
	fmt.Fprintf(cli.out, "  Source:        %s\n", data.Source)
	fmt.Fprintf(cli.out, "  Balance:       %s\n", common.FormatSOL(data.Balance))
	if summary.BalanceUSD != nil {
		fmt.Fprintf(cli.out, "  Balance (USD): $%.2f\n", *summary.BalanceUSD)
	}
	fmt.Fprintf(cli.out, "  Transactions:  %d (%d in, %d out)\n", summary.Transactions, summary.Incoming, summary.Outgoing)
	fmt.Fprintf(cli.out, "  Received:      %s\n", common.FormatSOL(summary.TotalReceived))
	fmt.Fprintf(cli.out, "  Sent:          %s\n", common.FormatSOL(summary.TotalSent))

	for _, tx := range data.Transactions {
		amount := "unknown"
		if tx.Amount != nil {
			amount = common.FormatSOL(*tx.Amount)
		}
		fmt.Fprintf(cli.out, "\n  %s  %s\n", common.FormatAddress(tx.Signature), common.FormatTimestamp(tx.Timestamp))
		fmt.Fprintf(cli.out, "    %s -> %s  %s\n", common.FormatAddress(tx.FromAddress), common.FormatAddress(tx.ToAddress), amount)
	}
	return nil
}

// GraphCmd prints the transaction graph
type GraphCmd struct {
	SourceFlags `embed:""`

	Address string `arg:"" help:"Wallet address"`
}

func (c *GraphCmd) Run(cli *CLI) error {
	ctx := context.Background()
	fetcher, err := c.fetcherFor(c.Address)
	if err != nil {
		return err
	}
	data, err := fetcher.FetchWalletData(ctx, c.Address)
	if err != nil {
		return err
	}
	return printJSON(cli.out, graph.Build(data))
}

// LayoutCmd prints settled node positions
type LayoutCmd struct {
	SourceFlags `embed:""`

	Address  string  `arg:"" help:"Wallet address"`
	Width    float64 `default:"800" help:"Viewport width"`
	Height   float64 `default:"600" help:"Viewport height"`
	MaxTicks int     `default:"1000" help:"Tick budget"`
	Seed     int64   `default:"1" help:"Seed of the coincident-node perturbation"`
}

func (c *LayoutCmd) Run(cli *CLI) error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("width and height must be positive")
	}
	ctx := context.Background()
	fetcher, err := c.fetcherFor(c.Address)
	if err != nil {
		return err
	}
	data, err := fetcher.FetchWalletData(ctx, c.Address)
	if err != nil {
		return err
	}

	engine, err := layout.New(graph.Build(data), layout.Viewport{Width: c.Width, Height: c.Height}, layout.Options{Seed: c.Seed})
	if err != nil {
		return err
	}
	defer engine.Stop()
	ticks := engine.Settle(c.MaxTicks)

	return printJSON(cli.out, map[string]any{
		"address":   data.Address,
		"ticks":     ticks,
		"state":     engine.State(),
		"positions": engine.Positions(),
	})
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
