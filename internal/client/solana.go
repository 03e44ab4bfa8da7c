package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"golang.org/x/time/rate"
)

// maxSupportedTransactionVersion is hardcoded - new version support
// requires library update and rebuild anyway
const maxSupportedTransactionVersion = uint64(0)

// ErrEmptyResult is returned when an endpoint answers without a result payload
var ErrEmptyResult = errors.New("empty result")

// Ledger is the subset of the ledger RPC used to build wallet data.
// Every method is one remote call against a single endpoint.
type Ledger interface {
	Endpoint() string
	GetBalance(ctx context.Context, address string) (uint64, error)
	GetSignatures(ctx context.Context, address string, limit int) ([]SignatureInfo, error)
	GetTransaction(ctx context.Context, signature string) (*TransactionDetail, error)
}

// SignatureInfo is one entry of a signature listing
type SignatureInfo struct {
	Signature          string
	Slot               uint64
	BlockTime          *int64 // unix seconds
	ConfirmationStatus string
	Failed             bool
}

// TransactionDetail holds the raw fields of a transaction needed for
// counterparty and amount extraction
type TransactionDetail struct {
	Signature       string
	Slot            uint64
	BlockTime       *int64 // unix seconds
	FeeLamports     uint64
	AccountKeys     []string
	PreBalances     []uint64
	PostBalances    []uint64
	RecentBlockhash string
	Failed          bool
}

// SolanaClient is a client for one Solana RPC endpoint
type SolanaClient struct {
	rpcClient *rpc.Client
	rpcURL    string
	name      string
	timeout   time.Duration
	limiter   *rate.Limiter
}

// ClientOptions tunes a SolanaClient
type ClientOptions struct {
	Timeout   time.Duration // per call
	RateLimit float64       // requests per second, 0 disables pacing
}

// NewSolanaClient creates a new Solana client for the given endpoint URL.
func NewSolanaClient(rpcURL string, opts ClientOptions) (*SolanaClient, error) {
	parsed, err := url.Parse(rpcURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid RPC URL %q", rpcURL)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &SolanaClient{
		rpcClient: rpc.New(rpcURL),
		rpcURL:    rpcURL,
		name:      parsed.Host,
		timeout:   opts.Timeout,
		limiter:   limiter,
	}, nil
}

// Endpoint returns the endpoint host used in logs and WalletData.Source
func (c *SolanaClient) Endpoint() string {
	return c.name
}

// GetBalance gets SOL balance in lamports
func (c *SolanaClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("invalid Solana address: %w", err)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	balance, err := c.rpcClient.GetBalance(ctx, pubkey, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get SOL balance from %s: %w", c.name, err)
	}
	if balance == nil {
		return 0, fmt.Errorf("failed to get SOL balance from %s: %w", c.name, ErrEmptyResult)
	}
	return balance.Value, nil
}

// GetSignatures gets the most recent signatures for the address, newest first
func (c *SolanaClient) GetSignatures(ctx context.Context, address string, limit int) ([]SignatureInfo, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("invalid Solana address: %w", err)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	sigs, err := c.rpcClient.GetSignaturesForAddressWithOpts(
		ctx,
		pubkey,
		&rpc.GetSignaturesForAddressOpts{
			Limit:      &limit,
			Commitment: rpc.CommitmentConfirmed,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get signatures from %s: %w", c.name, err)
	}

	out := make([]SignatureInfo, 0, len(sigs))
	for _, sig := range sigs {
		if sig == nil {
			continue
		}
		info := SignatureInfo{
			Signature:          sig.Signature.String(),
			Slot:               sig.Slot,
			ConfirmationStatus: string(sig.ConfirmationStatus),
			Failed:             sig.Err != nil,
		}
		if sig.BlockTime != nil {
			bt := int64(*sig.BlockTime)
			info.BlockTime = &bt
		}
		out = append(out, info)
	}
	return out, nil
}

// GetTransaction gets transaction details (supports versioned transactions)
func (c *SolanaClient) GetTransaction(ctx context.Context, signature string) (*TransactionDetail, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, fmt.Errorf("invalid signature: %w", err)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	maxVersion := maxSupportedTransactionVersion
	tx, err := c.rpcClient.GetTransaction(
		ctx,
		sig,
		&rpc.GetTransactionOpts{
			Encoding:                       solana.EncodingBase64,
			Commitment:                     rpc.CommitmentConfirmed,
			MaxSupportedTransactionVersion: &maxVersion,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from %s: %w", c.name, err)
	}
	if tx == nil || tx.Transaction == nil || tx.Meta == nil {
		return nil, fmt.Errorf("failed to get transaction from %s: %w", c.name, ErrEmptyResult)
	}

	decodedTx, err := tx.Transaction.GetTransaction()
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}

	detail := &TransactionDetail{
		Signature:       signature,
		Slot:            tx.Slot,
		FeeLamports:     tx.Meta.Fee,
		PreBalances:     tx.Meta.PreBalances,
		PostBalances:    tx.Meta.PostBalances,
		RecentBlockhash: decodedTx.Message.RecentBlockhash.String(),
		Failed:          tx.Meta.Err != nil,
	}
	if tx.BlockTime != nil {
		bt := int64(*tx.BlockTime)
		detail.BlockTime = &bt
	}
	detail.AccountKeys = make([]string, 0, len(decodedTx.Message.AccountKeys))
	for _, key := range decodedTx.Message.AccountKeys {
		detail.AccountKeys = append(detail.AccountKeys, key.String())
	}
	return detail, nil
}

// callContext bounds a single call by the configured timeout
func (c *SolanaClient) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// IsRateLimited checks if error indicates the endpoint throttled the request
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(strings.ToLower(errStr), "too many requests")
}
