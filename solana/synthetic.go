package solana

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/AlexZinkM/wallet-graph/internal/common"
	"github.com/AlexZinkM/wallet-graph/internal/model"
)

const (
	// SyntheticSource is WalletData.Source for generated datasets
	SyntheticSource = "synthetic"
	// SyntheticNotice is shown when every endpoint failed
	SyntheticNotice = "Live ledger data is unavailable; the data shown is illustrative."

	MinSyntheticBalance      = 0.5   // SOL
	MaxSyntheticBalance      = 100.0 // SOL
	MinSyntheticTransactions = 5
	MaxSyntheticTransactions = 15
	MaxSyntheticAmount       = 5.0 // SOL
	MaxSyntheticGap          = 6 * time.Hour

	syntheticFeeLamports    = 5000
	syntheticBaseSlot       = 250_000_000
	generatedCounterparties = 4
)

// knownCounterparties are real mainnet accounts mixed into synthetic data
var knownCounterparties = []string{
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	"So11111111111111111111111111111111111111112",
	"6NpdXrQEpmJgGJ7SZjMKBJWEUyVgvHr8EZXmLJGZds9K",
	"ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL",
}

// Synthesizer produces structurally valid wallet datasets when no endpoint answers.
// It is safe for concurrent use.
type Synthesizer struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewSynthesizer creates a Synthesizer. A zero seed selects a time based seed.
func NewSynthesizer(seed int64) *Synthesizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Synthesizer{rand: rand.New(rand.NewSource(seed))}
}

// Generate returns a synthetic dataset for address with timestamps strictly
// before now, newest first. Counterparties never equal address.
func (s *Synthesizer) Generate(address string, now time.Time) *model.WalletData {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := MinSyntheticBalance + s.rand.Float64()*(MaxSyntheticBalance-MinSyntheticBalance)
	count := MinSyntheticTransactions + s.rand.Intn(MaxSyntheticTransactions-MinSyntheticTransactions+1)
	counterparties := s.counterparties(address)

	txs := make([]model.Transaction, 0, count)
	seen := make(map[string]struct{}, count)
	ts := now
	slot := uint64(syntheticBaseSlot + s.rand.Intn(1_000_000))

	for len(txs) < count {
		signature := s.randomSignature()
		if _, dup := seen[signature]; dup {
			continue
		}
		seen[signature] = struct{}{}

		// Strictly decreasing: at least one minute between records
		gap := time.Minute + time.Duration(s.rand.Int63n(int64(MaxSyntheticGap-time.Minute)))
		ts = ts.Add(-gap)
		slot -= uint64(1 + s.rand.Intn(5000))

		counterparty := counterparties[s.rand.Intn(len(counterparties))]
		from, to := address, counterparty
		if s.rand.Float64() < 0.5 {
			from, to = counterparty, address
		}
		amount := roundLamports(s.rand.Float64() * MaxSyntheticAmount)

		txs = append(txs, model.Transaction{
			Signature:   signature,
			Slot:        slot,
			Timestamp:   ts.UnixMilli(),
			Fee:         common.LamportsToSOL(syntheticFeeLamports),
			Status:      model.StatusFinalized,
			Blockhash:   s.randomHash(),
			FromAddress: from,
			ToAddress:   to,
			Amount:      &amount,
		})
	}

	model.SortTransactions(txs)
	return &model.WalletData{
		Address:      address,
		Balance:      roundLamports(balance),
		Transactions: txs,
		Source:       SyntheticSource,
		Synthetic:    true,
		Notice:       SyntheticNotice,
	}
}

// counterparties returns the pool of addresses other than address
func (s *Synthesizer) counterparties(address string) []string {
	pool := make([]string, 0, len(knownCounterparties)+generatedCounterparties)
	for _, addr := range knownCounterparties {
		if addr != address {
			pool = append(pool, addr)
		}
	}
	for generated := 0; generated < generatedCounterparties; {
		var key solana.PublicKey
		s.rand.Read(key[:])
		if addr := key.String(); addr != address {
			pool = append(pool, addr)
			generated++
		}
	}
	return pool
}

func (s *Synthesizer) randomSignature() string {
	var sig solana.Signature
	s.rand.Read(sig[:])
	return sig.String()
}

func (s *Synthesizer) randomHash() string {
	var h solana.Hash
	s.rand.Read(h[:])
	return h.String()
}

// roundLamports drops precision below one lamport
func roundLamports(sol float64) float64 {
	return math.Round(sol*common.LamportsPerSOL) / common.LamportsPerSOL
}
