package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexZinkM/wallet-graph/internal/client"
	"github.com/AlexZinkM/wallet-graph/internal/common"
	"github.com/AlexZinkM/wallet-graph/internal/logging"
	"github.com/AlexZinkM/wallet-graph/internal/model"
)

const (
	DefaultSignatureLimit    = 20
	DefaultDetailConcurrency = 4
	DefaultBreakerFailures   = 3
	DefaultBreakerCooldown   = 30 * time.Second
)

// FetcherOptions configures a Fetcher
type FetcherOptions struct {
	SignatureLimit    int
	DetailConcurrency int
	// BreakerFailures consecutive summary failures open an endpoint's breaker;
	// an open endpoint is skipped until BreakerCooldown elapses
	BreakerFailures uint32
	BreakerCooldown time.Duration
	Synthesizer     *Synthesizer
	Logger          *zap.Logger
	Now             func() time.Time
}

// errCallerGone marks a call aborted because the caller's context ended
var errCallerGone = errors.New("caller context done")

// endpoint is one ledger in the fallback order with its breaker
type endpoint struct {
	ledger  client.Ledger
	breaker *gobreaker.CircuitBreaker
}

// walletSummary is the result of the balance + signature step
type walletSummary struct {
	lamports   uint64
	signatures []client.SignatureInfo
}

// Fetcher acquires wallet data from an ordered list of ledger endpoints.
// Remote failures never reach the caller: they move the fetch to the next
// endpoint and finally to synthetic data.
type Fetcher struct {
	endpoints         []endpoint
	signatureLimit    int
	detailConcurrency int
	synth             *Synthesizer
	logger            *zap.Logger
	now               func() time.Time
}

// NewFetcher creates a Fetcher over ledgers, tried in the given order
func NewFetcher(ledgers []client.Ledger, opts FetcherOptions) *Fetcher {
	if opts.SignatureLimit <= 0 {
		opts.SignatureLimit = DefaultSignatureLimit
	}
	if opts.DetailConcurrency <= 0 {
		opts.DetailConcurrency = DefaultDetailConcurrency
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = DefaultBreakerFailures
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = DefaultBreakerCooldown
	}
	if opts.Synthesizer == nil {
		opts.Synthesizer = NewSynthesizer(0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := logging.OrNop(opts.Logger)

	f := &Fetcher{
		signatureLimit:    opts.SignatureLimit,
		detailConcurrency: opts.DetailConcurrency,
		synth:             opts.Synthesizer,
		logger:            logger,
		now:               opts.Now,
	}

	failures := opts.BreakerFailures
	for _, ledger := range ledgers {
		f.endpoints = append(f.endpoints, endpoint{
			ledger: ledger,
			breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
				Name:        ledger.Endpoint(),
				MaxRequests: 1,
				Timeout:     opts.BreakerCooldown,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= failures
				},
				// a caller that went away says nothing about the endpoint
				IsSuccessful: func(err error) bool {
					return err == nil || errors.Is(err, errCallerGone)
				},
				OnStateChange: func(name string, from, to gobreaker.State) {
					logger.Warn("endpoint_breaker_state_change",
						zap.String("endpoint", name),
						zap.String("from", from.String()),
						zap.String("to", to.String()),
					)
				},
			}),
		})
	}
	return f
}

// NewFetcherFromURLs creates SolanaClients for urls and a Fetcher over them
func NewFetcherFromURLs(urls []string, clientOpts client.ClientOptions, opts FetcherOptions) (*Fetcher, error) {
	ledgers := make([]client.Ledger, 0, len(urls))
	for _, u := range urls {
		c, err := client.NewSolanaClient(u, clientOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to create Solana client: %w", err)
		}
		ledgers = append(ledgers, c)
	}
	return NewFetcher(ledgers, opts), nil
}

// FetchWalletData returns the balance and recent transactions of address,
// newest first. The only error is ErrInvalidAddress.
func (f *Fetcher) FetchWalletData(ctx context.Context, address string) (*model.WalletData, error) {
	if !IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	for _, ep := range f.endpoints {
		if ctx.Err() != nil {
			break
		}
		summary, err := f.fetchSummary(ctx, ep, address)
		if err != nil {
			if errors.Is(err, errCallerGone) {
				break
			}
			f.logger.Warn("endpoint_failed",
				zap.String("endpoint", ep.ledger.Endpoint()),
				zap.String("address", address),
				zap.Bool("rate_limited", client.IsRateLimited(err)),
				zap.Error(err),
			)
			continue
		}

		txs := f.fetchDetails(ctx, ep.ledger, summary.signatures)
		model.SortTransactions(txs)

		f.logger.Info("wallet_fetched",
			zap.String("endpoint", ep.ledger.Endpoint()),
			zap.String("address", address),
			zap.Int("transactions", len(txs)),
		)
		return &model.WalletData{
			Address:      address,
			Balance:      common.LamportsToSOL(summary.lamports),
			Transactions: txs,
			Source:       ep.ledger.Endpoint(),
		}, nil
	}

	if err := ctx.Err(); err != nil {
		f.logger.Info("fetch_cancelled_using_synthetic_data",
			zap.String("address", address),
			zap.Error(err),
		)
		return f.synth.Generate(address, f.now()), nil
	}

	f.logger.Warn("all_endpoints_failed_using_synthetic_data",
		zap.String("address", address),
		zap.Int("endpoints", len(f.endpoints)),
	)
	data := f.synth.Generate(address, f.now())
	model.SortTransactions(data.Transactions)
	return data, nil
}

// fetchSummary runs the balance + signature step against one endpoint
// through its breaker. An open breaker is reported as a failure.
func (f *Fetcher) fetchSummary(ctx context.Context, ep endpoint, address string) (*walletSummary, error) {
	result, err := ep.breaker.Execute(func() (interface{}, error) {
		lamports, err := ep.ledger.GetBalance(ctx, address)
		if err != nil {
			return nil, callerError(ctx, err)
		}
		sigs, err := ep.ledger.GetSignatures(ctx, address, f.signatureLimit)
		if err != nil {
			return nil, callerError(ctx, err)
		}
		return &walletSummary{lamports: lamports, signatures: sigs}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("endpoint skipped: %w", err)
		}
		return nil, err
	}
	return result.(*walletSummary), nil
}

// callerError tags err with errCallerGone when ctx has ended
func callerError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", errCallerGone, err)
	}
	return err
}

// fetchDetails fetches every signature's detail as one bounded batch.
// A failed detail degrades only its own record.
func (f *Fetcher) fetchDetails(ctx context.Context, ledger client.Ledger, sigs []client.SignatureInfo) []model.Transaction {
	records := make([]model.Transaction, len(sigs))
	now := f.now()

	var g errgroup.Group
	g.SetLimit(f.detailConcurrency)
	for i, sig := range sigs {
		i, sig := i, sig
		g.Go(func() error {
			detail, err := ledger.GetTransaction(ctx, sig.Signature)
			if err != nil {
				f.logger.Debug("transaction_detail_failed",
					zap.String("endpoint", ledger.Endpoint()),
					zap.String("signature", sig.Signature),
					zap.Error(err),
				)
				records[i] = partialRecord(sig, now)
				return nil
			}
			records[i] = recordFromDetail(sig, detail, now)
			return nil
		})
	}
	_ = g.Wait()

	return records
}
