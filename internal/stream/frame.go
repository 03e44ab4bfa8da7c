package stream

import "github.com/AlexZinkM/wallet-graph/internal/model"

// Server -> client frame types
const (
	FrameGraph     = "graph"
	FrameTick      = "tick"
	FrameSelect    = "select"
	FrameHover     = "hover"
	FrameOpen      = "open"
	FrameTransform = "transform"
	FrameError     = "error"
)

// Client -> server message types
const (
	MsgDragStart = "drag_start"
	MsgDragMove  = "drag_move"
	MsgDragEnd   = "drag_end"
	MsgZoom      = "zoom"
	MsgPan       = "pan"
	MsgClick     = "click"
	MsgHover     = "hover"
	MsgHoverOut  = "hover_out"
)

// Frame is one server -> client message
type Frame struct {
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
	Data    any    `json:"data"`
}

// GraphData is the payload of the opening graph frame
type GraphData struct {
	Address   string               `json:"address"`
	Graph     model.Graph          `json:"graph"`
	Positions []model.NodePosition `json:"positions"`
	Synthetic bool                 `json:"synthetic,omitempty"`
	Notice    string               `json:"notice,omitempty"`
}

// SelectData is the payload of a select frame: the node and the
// transactions behind it, newest first
type SelectData struct {
	Node         model.Node          `json:"node"`
	ExplorerURL  string              `json:"explorerUrl,omitempty"`
	Transactions []model.Transaction `json:"transactions"`
}

// OpenData asks the client to open url in a new browsing context
type OpenData struct {
	URL string `json:"url"`
}

// ErrorData reports a rejected client message
type ErrorData struct {
	Message string `json:"message"`
	Request string `json:"request,omitempty"`
}

// Message is one client -> server message
type Message struct {
	Type   string  `json:"type"`
	ID     string  `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Factor float64 `json:"factor,omitempty"`
}
