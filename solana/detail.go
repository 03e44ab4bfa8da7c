package solana

import (
	"time"

	"github.com/AlexZinkM/wallet-graph/internal/client"
	"github.com/AlexZinkM/wallet-graph/internal/common"
	"github.com/AlexZinkM/wallet-graph/internal/model"
)

// statusFromConfirmation maps an RPC confirmation status onto the record status.
// Anything short of finalized is reported as confirmed.
func statusFromConfirmation(status string) model.TransactionStatus {
	if status == string(model.StatusFinalized) {
		return model.StatusFinalized
	}
	return model.StatusConfirmed
}

// timestampMillis picks the block time in milliseconds, falling back to fallback
func timestampMillis(blockTime *int64, fallback time.Time) int64 {
	if blockTime != nil && *blockTime > 0 {
		return *blockTime * 1000
	}
	return fallback.UnixMilli()
}

// partialRecord builds the degraded record used when details are unobtainable.
// Only what the signature listing knows is kept.
func partialRecord(sig client.SignatureInfo, now time.Time) model.Transaction {
	return model.Transaction{
		Signature:   sig.Signature,
		Slot:        sig.Slot,
		Timestamp:   timestampMillis(sig.BlockTime, now),
		Fee:         0,
		Status:      statusFromConfirmation(sig.ConfirmationStatus),
		FromAddress: model.UnknownAddress,
		ToAddress:   model.UnknownAddress,
		Partial:     true,
	}
}

// recordFromDetail extracts a transaction record from raw ledger detail.
//
// Counterparties and amount are a best-effort heuristic, not ledger-accurate
// accounting: the fee payer (first account key) is taken as the sender and
// the second account key as the recipient. The amount is the recipient's
// lamport gain, or else the sender's loss net of the fee. Instructions that
// move funds between other accounts are not interpreted.
func recordFromDetail(sig client.SignatureInfo, d *client.TransactionDetail, now time.Time) model.Transaction {
	blockTime := d.BlockTime
	if blockTime == nil {
		blockTime = sig.BlockTime
	}
	slot := d.Slot
	if slot == 0 {
		slot = sig.Slot
	}

	tx := model.Transaction{
		Signature:   sig.Signature,
		Slot:        slot,
		Timestamp:   timestampMillis(blockTime, now),
		Fee:         common.LamportsToSOL(d.FeeLamports),
		Status:      statusFromConfirmation(sig.ConfirmationStatus),
		Blockhash:   d.RecentBlockhash,
		FromAddress: model.UnknownAddress,
		ToAddress:   model.UnknownAddress,
	}

	if len(d.AccountKeys) > 0 {
		tx.FromAddress = d.AccountKeys[0]
	}
	if len(d.AccountKeys) > 1 {
		tx.ToAddress = d.AccountKeys[1]
	}

	if lamports, ok := transferredLamports(d); ok {
		amount := common.LamportsToSOL(lamports)
		tx.Amount = &amount
	}
	return tx
}

// transferredLamports estimates the moved amount from balance deltas
func transferredLamports(d *client.TransactionDetail) (uint64, bool) {
	if len(d.PreBalances) > 1 && len(d.PostBalances) > 1 {
		if d.PostBalances[1] > d.PreBalances[1] {
			return d.PostBalances[1] - d.PreBalances[1], true
		}
	}
	if len(d.PreBalances) > 0 && len(d.PostBalances) > 0 {
		spent := d.PostBalances[0] + d.FeeLamports
		if d.PreBalances[0] > spent {
			return d.PreBalances[0] - spent, true
		}
	}
	return 0, false
}
