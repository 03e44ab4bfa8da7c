package model

// NodeKind kind of graph node
type NodeKind string

const (
	NodeWallet      NodeKind = "wallet"
	NodeTransaction NodeKind = "transaction"
)

// Node represents a wallet or transaction vertex.
// Positions are not part of the node: the layout engine owns them.
type Node struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Kind    NodeKind `json:"type"`
	Balance *float64 `json:"balance,omitempty"` // wallet nodes only
	Value   float64  `json:"value"`             // size weight
	Color   string   `json:"color,omitempty"`
}

// Link represents a directed edge: source -> target is the flow of funds
type Link struct {
	Source    string   `json:"source"`
	Target    string   `json:"target"`
	Value     float64  `json:"value"` // thickness weight
	Signature string   `json:"signature,omitempty"`
	Timestamp int64    `json:"timestamp,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
}

// Graph is the node-link model built from wallet data
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node returns the node with the given id
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// GraphResponse represents response for GET /api/graph
type GraphResponse struct {
	Address   string `json:"address"`
	Graph     Graph  `json:"graph"`
	Synthetic bool   `json:"synthetic,omitempty"`
	Notice    string `json:"notice,omitempty"`
}
