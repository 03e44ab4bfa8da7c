package graph

import (
	"github.com/AlexZinkM/wallet-graph/internal/common"
	"github.com/AlexZinkM/wallet-graph/internal/model"
)

const (
	MainWalletValue   = 15
	TransactionValue  = 10
	CounterpartyValue = 8
	LinkValue         = 3

	MainWalletColor   = "#9945FF"
	TransactionColor  = "#14F195"
	CounterpartyColor = "#03E1FF"
)

// Build turns wallet data into the node-link graph.
// The queried wallet comes first, then every transaction in input order
// followed by its not yet seen counterparties. Each transaction yields a
// sender -> transaction and a transaction -> recipient link.
func Build(data *model.WalletData) model.Graph {
	g := model.Graph{
		Nodes: make([]model.Node, 0, 1+2*len(data.Transactions)),
		Links: make([]model.Link, 0, 2*len(data.Transactions)),
	}
	seen := make(map[string]struct{}, 1+2*len(data.Transactions))

	add := func(n model.Node) {
		if _, ok := seen[n.ID]; ok {
			return
		}
		seen[n.ID] = struct{}{}
		g.Nodes = append(g.Nodes, n)
	}

	balance := data.Balance
	add(model.Node{
		ID:      data.Address,
		Label:   common.FormatAddress(data.Address),
		Kind:    model.NodeWallet,
		Balance: &balance,
		Value:   MainWalletValue,
		Color:   MainWalletColor,
	})

	for _, tx := range data.Transactions {
		add(model.Node{
			ID:    tx.Signature,
			Label: common.FormatAddress(tx.Signature),
			Kind:  model.NodeTransaction,
			Value: TransactionValue,
			Color: TransactionColor,
		})
		add(counterparty(tx.FromAddress))
		add(counterparty(tx.ToAddress))

		g.Links = append(g.Links,
			link(tx.FromAddress, tx.Signature, tx),
			link(tx.Signature, tx.ToAddress, tx),
		)
	}

	return g
}

func counterparty(address string) model.Node {
	return model.Node{
		ID:    address,
		Label: common.FormatAddress(address),
		Kind:  model.NodeWallet,
		Value: CounterpartyValue,
		Color: CounterpartyColor,
	}
}

func link(source, target string, tx model.Transaction) model.Link {
	l := model.Link{
		Source:    source,
		Target:    target,
		Value:     LinkValue,
		Signature: tx.Signature,
		Timestamp: tx.Timestamp,
	}
	if tx.Amount != nil {
		amount := *tx.Amount
		l.Amount = &amount
	}
	return l
}
