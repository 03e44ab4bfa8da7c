package layout

import (
	"math"

	"github.com/AlexZinkM/wallet-graph/internal/model"
)

const (
	MinWalletRadius      = 8
	MaxWalletRadius      = 20
	MinTransactionRadius = 6
	MaxTransactionRadius = 15
)

// Radius derives the drawn radius of a node.
// Wallets grow with the square root of their balance, transactions with
// their size weight. Both are clamped so extreme values don't dominate.
func Radius(n model.Node) float64 {
	if n.Kind == model.NodeWallet {
		if n.Balance == nil || *n.Balance <= 0 {
			return MinWalletRadius
		}
		return clamp(MinWalletRadius+3*math.Sqrt(*n.Balance), MinWalletRadius, MaxWalletRadius)
	}
	return clamp(math.Sqrt(20*math.Max(n.Value, 0)), MinTransactionRadius, MaxTransactionRadius)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
