package interaction

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-graph/internal/common"
	"github.com/AlexZinkM/wallet-graph/internal/layout"
	"github.com/AlexZinkM/wallet-graph/internal/logging"
	"github.com/AlexZinkM/wallet-graph/internal/model"
	"github.com/AlexZinkM/wallet-graph/solana"
)

var ErrNoDrag = errors.New("no drag in progress")

const (
	DefaultMinScale        = 0.5
	DefaultMaxScale        = 3
	DefaultDragAlphaTarget = 0.3

	TooltipOffsetX = 10
	TooltipOffsetY = -28

	explorerHint = "Click to view on Solscan"
)

// Engine is the part of the layout engine the controller drives
type Engine interface {
	Pin(id string, x, y float64) error
	Unpin(id string) error
	SetAlphaTarget(target float64) error
	Position(id string) (model.NodePosition, bool)
	Node(id string) (model.Node, bool)
	NodeAt(x, y float64) (model.Node, bool)
}

// Opener opens a URL in a new browsing context
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// Tooltip is the transient hover content positioned near the pointer
type Tooltip struct {
	NodeID string   `json:"id"`
	Title  string   `json:"title"`
	Lines  []string `json:"lines"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
}

type Options struct {
	MinScale        float64
	MaxScale        float64
	DragAlphaTarget float64
	Opener          Opener
	ExplorerURL     string
	Logger          *zap.Logger
}

// drag is an active gesture: the pinned node and the pointer's offset from it
type drag struct {
	id     string
	dx, dy float64
}

// Controller turns pointer gestures into engine pins, a view transform,
// selection events and tooltips
type Controller struct {
	mu        sync.Mutex
	engine    Engine
	opts      Options
	transform Transform
	drag      *drag

	onSelect    []func(model.Node)
	onHover     []func(*Tooltip)
	onTransform []func(Transform)

	logger *zap.Logger
}

func New(engine Engine, opts Options) *Controller {
	if opts.MinScale <= 0 {
		opts.MinScale = DefaultMinScale
	}
	if opts.MaxScale < opts.MinScale {
		opts.MaxScale = max(DefaultMaxScale, opts.MinScale)
	}
	if opts.DragAlphaTarget <= 0 {
		opts.DragAlphaTarget = DefaultDragAlphaTarget
	}
	if opts.ExplorerURL == "" {
		opts.ExplorerURL = solana.DefaultExplorerURL
	}
	return &Controller{
		engine:    engine,
		opts:      opts,
		transform: Identity,
		logger:    logging.OrNop(opts.Logger),
	}
}

// OnSelect registers fn to receive clicked nodes
func (c *Controller) OnSelect(fn func(model.Node)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSelect = append(c.onSelect, fn)
}

// OnHover registers fn to receive tooltips; nil clears the tooltip
func (c *Controller) OnHover(fn func(*Tooltip)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onHover = append(c.onHover, fn)
}

// OnTransform registers fn to receive zoom and pan changes
func (c *Controller) OnTransform(fn func(Transform)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTransform = append(c.onTransform, fn)
}

// Transform returns the current view transform
func (c *Controller) Transform() Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

// Pointer maps a screen point into simulation space
func (c *Controller) Pointer(x, y float64) (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform.Invert(x, y)
}

// DragStart pins node id where it stands and raises the simulation energy.
// The node then follows the pointer at (x, y) keeping its offset.
func (c *Controller) DragStart(id string, x, y float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.engine.Position(id)
	if !ok {
		return fmt.Errorf("%w: %q", layout.ErrUnknownNode, id)
	}
	if c.drag != nil && c.drag.id != id {
		if err := c.engine.Unpin(c.drag.id); err != nil {
			return fmt.Errorf("failed to release previous drag: %w", err)
		}
	}

	if err := c.engine.SetAlphaTarget(c.opts.DragAlphaTarget); err != nil {
		return fmt.Errorf("failed to raise simulation energy: %w", err)
	}
	if err := c.engine.Pin(id, pos.X, pos.Y); err != nil {
		return fmt.Errorf("failed to pin node: %w", err)
	}

	px, py := c.transform.Invert(x, y)
	c.drag = &drag{id: id, dx: pos.X - px, dy: pos.Y - py}
	return nil
}

// DragMove moves the pinned node to follow the pointer
func (c *Controller) DragMove(x, y float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil {
		return ErrNoDrag
	}
	px, py := c.transform.Invert(x, y)
	if err := c.engine.Pin(c.drag.id, px+c.drag.dx, py+c.drag.dy); err != nil {
		return fmt.Errorf("failed to move pin: %w", err)
	}
	return nil
}

// DragEnd releases the pin and lets the energy decay again
func (c *Controller) DragEnd() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil {
		return ErrNoDrag
	}
	return c.releaseLocked()
}

// Dragging returns the id of the node being dragged
func (c *Controller) Dragging() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drag == nil {
		return "", false
	}
	return c.drag.id, true
}

func (c *Controller) releaseLocked() error {
	id := c.drag.id
	c.drag = nil

	if err := c.engine.SetAlphaTarget(0); err != nil {
		return fmt.Errorf("failed to lower simulation energy: %w", err)
	}
	if err := c.engine.Unpin(id); err != nil {
		return fmt.Errorf("failed to unpin node: %w", err)
	}
	return nil
}

// Close releases any held pin
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drag == nil {
		return
	}
	if err := c.releaseLocked(); err != nil && !errors.Is(err, layout.ErrStopped) {
		c.logger.Debug("drag_release_failed", zap.Error(err))
	}
}

// Zoom scales the view by factor around the screen point (x, y).
// The scale stays within [MinScale, MaxScale].
func (c *Controller) Zoom(factor, x, y float64) Transform {
	c.mu.Lock()
	if factor <= 0 {
		t := c.transform
		c.mu.Unlock()
		return t
	}
	k := min(max(c.transform.K*factor, c.opts.MinScale), c.opts.MaxScale)
	sx, sy := c.transform.Invert(x, y)
	c.transform = Transform{X: x - sx*k, Y: y - sy*k, K: k}
	t, callbacks := c.transform, append([]func(Transform){}, c.onTransform...)
	c.mu.Unlock()

	emitTransform(callbacks, t)
	return t
}

// Pan translates the view by (dx, dy) screen pixels
func (c *Controller) Pan(dx, dy float64) Transform {
	c.mu.Lock()
	c.transform.X += dx
	c.transform.Y += dy
	t, callbacks := c.transform, append([]func(Transform){}, c.onTransform...)
	c.mu.Unlock()

	emitTransform(callbacks, t)
	return t
}

// emitTransform runs callbacks without holding the controller lock
func emitTransform(callbacks []func(Transform), t Transform) {
	for _, fn := range callbacks {
		fn(t)
	}
}

// HitTest returns the top-most node under the screen point (x, y)
func (c *Controller) HitTest(x, y float64) (model.Node, bool) {
	c.mu.Lock()
	sx, sy := c.transform.Invert(x, y)
	c.mu.Unlock()
	return c.engine.NodeAt(sx, sy)
}

// Click selects node id. Clicking a wallet also opens its explorer page.
func (c *Controller) Click(id string) error {
	node, ok := c.engine.Node(id)
	if !ok {
		return fmt.Errorf("%w: %q", layout.ErrUnknownNode, id)
	}
	return c.click(node)
}

// ClickAt hit-tests the screen point and clicks whatever is there.
// It reports whether a node was hit.
func (c *Controller) ClickAt(x, y float64) (bool, error) {
	node, ok := c.HitTest(x, y)
	if !ok {
		return false, nil
	}
	return true, c.click(node)
}

func (c *Controller) click(node model.Node) error {
	var openErr error
	if node.Kind == model.NodeWallet && c.opts.Opener != nil {
		url := solana.ExplorerAccountURL(c.opts.ExplorerURL, node.ID)
		if err := c.opts.Opener.Open(url); err != nil {
			c.logger.Warn("explorer_open_failed", zap.String("url", url), zap.Error(err))
			openErr = fmt.Errorf("failed to open explorer: %w", err)
		}
	}

	c.mu.Lock()
	callbacks := append([]func(model.Node){}, c.onSelect...)
	c.mu.Unlock()
	for _, fn := range callbacks {
		fn(node)
	}
	return openErr
}

// HoverEnter emits the tooltip for node id near the screen point (x, y)
func (c *Controller) HoverEnter(id string, x, y float64) error {
	node, ok := c.engine.Node(id)
	if !ok {
		return fmt.Errorf("%w: %q", layout.ErrUnknownNode, id)
	}
	tip := tooltipFor(node, x, y)
	c.emitHover(&tip)
	return nil
}

// HoverLeave clears the tooltip
func (c *Controller) HoverLeave() {
	c.emitHover(nil)
}

func (c *Controller) emitHover(tip *Tooltip) {
	c.mu.Lock()
	callbacks := append([]func(*Tooltip){}, c.onHover...)
	c.mu.Unlock()
	for _, fn := range callbacks {
		fn(tip)
	}
}

func tooltipFor(node model.Node, x, y float64) Tooltip {
	tip := Tooltip{NodeID: node.ID, X: x + TooltipOffsetX, Y: y + TooltipOffsetY}
	if node.Kind == model.NodeWallet {
		tip.Title = node.Label
		if node.Balance != nil {
			tip.Lines = append(tip.Lines, "Balance: "+common.FormatSOL(*node.Balance))
		}
		tip.Lines = append(tip.Lines, explorerHint)
		return tip
	}
	tip.Title = "Transaction"
	tip.Lines = []string{node.Label}
	return tip
}
