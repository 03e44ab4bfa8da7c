package solana

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizer_Generate(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	for seed := int64(1); seed <= 20; seed++ {
		data := NewSynthesizer(seed).Generate(wallet, now)

		require.GreaterOrEqual(t, len(data.Transactions), MinSyntheticTransactions)
		require.LessOrEqual(t, len(data.Transactions), MaxSyntheticTransactions)
		assert.GreaterOrEqual(t, data.Balance, MinSyntheticBalance)
		assert.LessOrEqual(t, data.Balance, MaxSyntheticBalance)

		seen := map[string]bool{}
		for i, tx := range data.Transactions {
			assert.False(t, seen[tx.Signature], "duplicate signature")
			seen[tx.Signature] = true
			assert.True(t, IsValidAddress(tx.FromAddress))
			assert.True(t, IsValidAddress(tx.ToAddress))
			assert.True(t, (tx.FromAddress == wallet) != (tx.ToAddress == wallet))
			assert.NotEmpty(t, tx.Blockhash)
			require.NotNil(t, tx.Amount)
			assert.GreaterOrEqual(t, *tx.Amount, 0.0)
			assert.LessOrEqual(t, *tx.Amount, MaxSyntheticAmount)
			if i > 0 {
				prev := data.Transactions[i-1]
				assert.LessOrEqual(t, tx.Timestamp, prev.Timestamp-time.Minute.Milliseconds())
				assert.Less(t, tx.Slot, prev.Slot)
			}
		}
	}
}

func TestSynthesizer_SeededIsDeterministic(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	a := NewSynthesizer(5).Generate(wallet, now)
	b := NewSynthesizer(5).Generate(wallet, now)

	assert.Equal(t, a, b)
}

func TestSynthesizer_ExcludesKnownCounterpartyAddress(t *testing.T) {
	t.Parallel()

	self := knownCounterparties[0]
	data := NewSynthesizer(3).Generate(self, time.Now())

	for _, tx := range data.Transactions {
		assert.NotEqual(t, tx.FromAddress, tx.ToAddress)
	}
}
