package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlexZinkM/wallet-graph/internal/model"
)

func balance(v float64) *float64 { return &v }

func TestRadius(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node model.Node
		want float64
	}{
		{"wallet without balance", model.Node{Kind: model.NodeWallet}, 8},
		{"wallet with zero balance", model.Node{Kind: model.NodeWallet, Balance: balance(0)}, 8},
		{"wallet with balance 4", model.Node{Kind: model.NodeWallet, Balance: balance(4)}, 14},
		{"wallet with huge balance", model.Node{Kind: model.NodeWallet, Balance: balance(1e9)}, 20},
		{"transaction weight 10", model.Node{Kind: model.NodeTransaction, Value: 10}, 14.142135623730951},
		{"transaction weight 1", model.Node{Kind: model.NodeTransaction, Value: 1}, 6},
		{"transaction weight 100", model.Node{Kind: model.NodeTransaction, Value: 100}, 15},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Radius(tt.node), 1e-9)
		})
	}
}
