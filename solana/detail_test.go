package solana

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-graph/internal/client"
	"github.com/AlexZinkM/wallet-graph/internal/model"
)

func TestRecordFromDetail(t *testing.T) {
	t.Parallel()

	bt := int64(1_700_000_000)
	sig := client.SignatureInfo{Signature: "s", Slot: 9, ConfirmationStatus: "confirmed"}
	d := &client.TransactionDetail{
		BlockTime:       &bt,
		FeeLamports:     5000,
		AccountKeys:     []string{wallet, peer, "11111111111111111111111111111111"},
		PreBalances:     []uint64{10_000_000_000, 0, 1},
		PostBalances:    []uint64{7_499_995_000, 2_500_000_000, 1},
		RecentBlockhash: "hash",
	}

	tx := recordFromDetail(sig, d, time.Now())

	assert.Equal(t, "s", tx.Signature)
	assert.Equal(t, uint64(9), tx.Slot)
	assert.Equal(t, bt*1000, tx.Timestamp)
	assert.Equal(t, model.StatusConfirmed, tx.Status)
	assert.Equal(t, wallet, tx.FromAddress)
	assert.Equal(t, peer, tx.ToAddress)
	assert.Equal(t, "hash", tx.Blockhash)
	assert.False(t, tx.Partial)
	require.NotNil(t, tx.Amount)
	assert.InDelta(t, 2.5, *tx.Amount, 1e-12)
}

func TestRecordFromDetail_SenderLossWhenRecipientDidNotGain(t *testing.T) {
	t.Parallel()

	d := &client.TransactionDetail{
		FeeLamports:  5000,
		AccountKeys:  []string{wallet, peer},
		PreBalances:  []uint64{2_000_005_000, 100},
		PostBalances: []uint64{1_000_000_000, 100},
	}

	tx := recordFromDetail(client.SignatureInfo{Signature: "s"}, d, time.Now())

	require.NotNil(t, tx.Amount)
	assert.InDelta(t, 1.0, *tx.Amount, 1e-12)
}

func TestRecordFromDetail_SparseDetail(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_234_000)
	d := &client.TransactionDetail{AccountKeys: []string{wallet}}

	tx := recordFromDetail(client.SignatureInfo{Signature: "s"}, d, now)

	assert.Equal(t, wallet, tx.FromAddress)
	assert.Equal(t, model.UnknownAddress, tx.ToAddress)
	assert.Nil(t, tx.Amount)
	assert.Equal(t, now.UnixMilli(), tx.Timestamp)
}

func TestPartialRecord(t *testing.T) {
	t.Parallel()

	bt := int64(42)
	tx := partialRecord(client.SignatureInfo{Signature: "s", Slot: 3, BlockTime: &bt, ConfirmationStatus: "finalized"}, time.Now())

	assert.True(t, tx.Partial)
	assert.Nil(t, tx.Amount)
	assert.Equal(t, model.UnknownAddress, tx.FromAddress)
	assert.Equal(t, model.UnknownAddress, tx.ToAddress)
	assert.Equal(t, int64(42_000), tx.Timestamp)
	assert.Equal(t, model.StatusFinalized, tx.Status)
}
