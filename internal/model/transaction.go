package model

import "sort"

// TransactionStatus commitment status of a transaction
type TransactionStatus string

const (
	StatusConfirmed TransactionStatus = "confirmed"
	StatusFinalized TransactionStatus = "finalized"
)

// UnknownAddress marks a counterparty that could not be recovered from the ledger
const UnknownAddress = "unknown"

// Transaction represents a single ledger transaction touching the queried wallet
type Transaction struct {
	Signature   string            `json:"signature"`
	Slot        uint64            `json:"slot"`
	Timestamp   int64             `json:"timestamp"` // milliseconds since epoch
	Fee         float64           `json:"fee"`       // SOL
	Status      TransactionStatus `json:"status"`
	Blockhash   string            `json:"blockhash,omitempty"`
	FromAddress string            `json:"fromAddress"`
	ToAddress   string            `json:"toAddress"`
	Amount      *float64          `json:"amount,omitempty"` // SOL, absent when unknown
	Partial     bool              `json:"partial,omitempty"` // details could not be fetched
}

// WalletData represents a wallet's balance and recent history
type WalletData struct {
	Address      string        `json:"address"`
	Balance      float64       `json:"balance"` // SOL
	Transactions []Transaction `json:"transactions"`
	Source       string        `json:"source"`              // endpoint name, or "synthetic"
	Synthetic    bool          `json:"synthetic,omitempty"` // remote data was unavailable
	Notice       string        `json:"notice,omitempty"`
}

// SortTransactions orders transactions newest first.
// Ties are broken by slot and then signature so the order is stable across calls.
func SortTransactions(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Timestamp != txs[j].Timestamp {
			return txs[i].Timestamp > txs[j].Timestamp
		}
		if txs[i].Slot != txs[j].Slot {
			return txs[i].Slot > txs[j].Slot
		}
		return txs[i].Signature < txs[j].Signature
	})
}

// Find returns the transaction with the given signature
func (w *WalletData) Find(signature string) (Transaction, bool) {
	for _, tx := range w.Transactions {
		if tx.Signature == signature {
			return tx, true
		}
	}
	return Transaction{}, false
}

// Related returns up to limit transactions in which address is sender or recipient.
// Transactions keep their stored (newest first) order. limit <= 0 means all.
func (w *WalletData) Related(address string, limit int) []Transaction {
	if limit <= 0 {
		limit = len(w.Transactions)
	}
	related := make([]Transaction, 0, min(limit, len(w.Transactions)))
	for _, tx := range w.Transactions {
		if len(related) == limit {
			break
		}
		if tx.FromAddress == address || tx.ToAddress == address {
			related = append(related, tx)
		}
	}
	return related
}

// WalletSummary represents response for GET /api/wallet/summary
type WalletSummary struct {
	Address       string   `json:"address"`
	Balance       float64  `json:"balance"`
	BalanceUSD    *float64 `json:"balanceUsd,omitempty"`
	Transactions  int      `json:"transactions"`
	Incoming      int      `json:"incoming"`
	Outgoing      int      `json:"outgoing"`
	TotalReceived float64  `json:"totalReceived"`
	TotalSent     float64  `json:"totalSent"`
	LastActivity  int64    `json:"lastActivity,omitempty"`
	Synthetic     bool     `json:"synthetic,omitempty"`
	Notice        string   `json:"notice,omitempty"`
}
