package model

// NodePosition is a read-only snapshot of one node in the layout
type NodePosition struct {
	ID     string   `json:"id"`
	Kind   NodeKind `json:"type"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	VX     float64  `json:"vx"`
	VY     float64  `json:"vy"`
	Radius float64  `json:"r"`
	Pinned bool     `json:"pinned,omitempty"`
	FX     *float64 `json:"fx,omitempty"`
	FY     *float64 `json:"fy,omitempty"`
}

// LayoutResponse represents response for GET /api/layout
type LayoutResponse struct {
	Address   string         `json:"address"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Ticks     int            `json:"ticks"`
	Graph     Graph          `json:"graph"`
	Positions []NodePosition `json:"positions"`
	Synthetic bool           `json:"synthetic,omitempty"`
	Notice    string         `json:"notice,omitempty"`
}
