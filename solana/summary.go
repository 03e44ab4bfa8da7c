package solana

import (
	"context"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-graph/internal/common"
	"github.com/AlexZinkM/wallet-graph/internal/logging"
	"github.com/AlexZinkM/wallet-graph/internal/model"
)

// PriceSource provides the SOL/USD rate
type PriceSource interface {
	GetSOLtoUSDRate(ctx context.Context) (float64, error)
}

// Summarize computes incoming/outgoing statistics of data.
// usdRate <= 0 leaves BalanceUSD absent.
func Summarize(data *model.WalletData, usdRate float64) model.WalletSummary {
	summary := model.WalletSummary{
		Address:      data.Address,
		Balance:      data.Balance,
		Transactions: len(data.Transactions),
		Synthetic:    data.Synthetic,
		Notice:       data.Notice,
	}

	// sums run in lamports so repeated float addition cannot drift
	var received, sent uint64
	for _, tx := range data.Transactions {
		var lamports uint64
		if tx.Amount != nil {
			lamports = common.SOLToLamports(*tx.Amount)
		}
		if tx.ToAddress == data.Address {
			summary.Incoming++
			received += lamports
		}
		if tx.FromAddress == data.Address {
			summary.Outgoing++
			sent += lamports
		}
		if tx.Timestamp > summary.LastActivity {
			summary.LastActivity = tx.Timestamp
		}
	}

	summary.TotalReceived = common.LamportsToSOL(received)
	summary.TotalSent = common.LamportsToSOL(sent)

	if usdRate > 0 {
		usd := data.Balance * usdRate
		summary.BalanceUSD = &usd
	}
	return summary
}

// SummarizeWithPrice summarizes data using prices for the USD value.
// A price failure is logged and leaves the USD value absent.
func SummarizeWithPrice(ctx context.Context, data *model.WalletData, prices PriceSource, logger *zap.Logger) model.WalletSummary {
	var rate float64
	if prices != nil {
		r, err := prices.GetSOLtoUSDRate(ctx)
		if err != nil {
			logging.OrNop(logger).Warn("price_unavailable", zap.Error(err))
		} else {
			rate = r
		}
	}
	return Summarize(data, rate)
}
