package layout

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-graph/internal/logging"
	"github.com/AlexZinkM/wallet-graph/internal/model"
)

var (
	ErrStopped     = errors.New("layout engine stopped")
	ErrUnknownNode = errors.New("unknown node")
)

const (
	DefaultLinkDistance   = 100
	DefaultChargeStrength = -300
	DefaultAxisStrength   = 0.1
	DefaultAlphaMin       = 0.001
	DefaultVelocityDecay  = 0.4
	DefaultTickInterval   = 16 * time.Millisecond
	DefaultMaxTicks       = 1000
	DefaultSeed           = 1

	distanceMin2 = 1
	jiggleScale  = 1e-6
)

// State is the lifecycle state of an Engine
type State int

const (
	Initializing State = iota
	Running
	Settled
	Stopped
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Settled:
		return "settled"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state name in JSON frames
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Viewport is the drawing surface the layout is centered on
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) center() (float64, float64) {
	return v.Width / 2, v.Height / 2
}

// Options tunes the simulation. Zero values take the defaults.
type Options struct {
	LinkDistance   float64
	ChargeStrength float64
	AxisStrength   float64
	AlphaMin       float64
	AlphaDecay     float64 // defaults to 1 - AlphaMin^(1/300)
	VelocityDecay  float64
	TickInterval   time.Duration
	Seed           int64
	Logger         *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.LinkDistance <= 0 {
		o.LinkDistance = DefaultLinkDistance
	}
	if o.ChargeStrength == 0 {
		o.ChargeStrength = DefaultChargeStrength
	}
	if o.AxisStrength <= 0 {
		o.AxisStrength = DefaultAxisStrength
	}
	if o.AlphaMin <= 0 {
		o.AlphaMin = DefaultAlphaMin
	}
	if o.AlphaDecay <= 0 {
		o.AlphaDecay = 1 - math.Pow(o.AlphaMin, 1.0/300)
	}
	if o.VelocityDecay <= 0 || o.VelocityDecay >= 1 {
		o.VelocityDecay = DefaultVelocityDecay
	}
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// Frame is delivered to tick callbacks after every tick of the loop
type Frame struct {
	Tick      int                  `json:"tick"`
	Alpha     float64              `json:"alpha"`
	State     State                `json:"state"`
	Positions []model.NodePosition `json:"positions"`
}

// Engine is a force-directed layout over a graph.
// It is the only writer of node positions; callers read copies.
type Engine struct {
	mu       sync.Mutex
	opts     Options
	viewport Viewport
	graph    model.Graph
	nodes    []model.Node
	index    map[string]int
	bodies   []body
	springs  []spring
	rand     *rand.Rand

	alpha       float64
	alphaTarget float64
	state       State
	ticks       int
	callbacks   []func(Frame)

	started  bool
	wake     chan struct{}
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	logger *zap.Logger
}

// New creates an Engine in the Initializing state with every node
// placed on a spiral around the viewport center.
func New(g model.Graph, viewport Viewport, opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	e := &Engine{
		opts:     opts,
		viewport: viewport,
		rand:     rand.New(rand.NewSource(opts.Seed)),
		alpha:    1,
		state:    Initializing,
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logging.OrNop(opts.Logger),
	}
	if err := e.load(g); err != nil {
		return nil, err
	}
	return e, nil
}

// load replaces the node and link set, keeping positions of surviving nodes
func (e *Engine) load(g model.Graph) error {
	index := make(map[string]int, len(g.Nodes))
	nodes := make([]model.Node, 0, len(g.Nodes))
	bodies := make([]body, 0, len(g.Nodes))
	cx, cy := e.viewport.center()

	for _, n := range g.Nodes {
		if _, dup := index[n.ID]; dup {
			continue
		}
		b := body{radius: Radius(n)}
		if prev, ok := e.index[n.ID]; ok {
			b = e.bodies[prev]
			b.radius = Radius(n)
		} else {
			b.x, b.y = phyllotaxis(len(bodies), cx, cy)
		}
		index[n.ID] = len(bodies)
		nodes = append(nodes, n)
		bodies = append(bodies, b)
	}

	pairs := make([][2]int, 0, len(g.Links))
	for _, l := range g.Links {
		s, ok := index[l.Source]
		if !ok {
			return fmt.Errorf("%w: link source %q", ErrUnknownNode, l.Source)
		}
		t, ok := index[l.Target]
		if !ok {
			return fmt.Errorf("%w: link target %q", ErrUnknownNode, l.Target)
		}
		pairs = append(pairs, [2]int{s, t})
	}

	e.graph = g
	e.nodes = nodes
	e.index = index
	e.bodies = bodies
	e.springs = newSprings(pairs, len(bodies))
	return nil
}

// OnTick registers fn to receive a frame after every tick of the loop
// started by Start. fn runs on the loop goroutine and must not call Stop
// directly; it may call it from another goroutine.
func (e *Engine) OnTick(fn func(Frame)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks = append(e.callbacks, fn)
}

// Start moves the engine to Running and starts the tick loop
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Stopped {
		return ErrStopped
	}
	if e.started {
		return nil
	}
	e.started = true
	if e.state == Initializing {
		e.state = Running
	}
	go e.run()

	e.logger.Debug("layout_started", zap.Int("nodes", len(e.bodies)), zap.Int("links", len(e.springs)))
	return nil
}

// Stop ends the simulation and waits for the tick loop to exit.
// No tick callback runs after Stop returns. Pins are released.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		e.state = Stopped
		for i := range e.bodies {
			e.bodies[i].pinned = false
		}
		started := e.started
		e.mu.Unlock()

		close(e.quit)
		if started {
			<-e.done
		}
		e.logger.Debug("layout_stopped", zap.Int("ticks", e.Ticks()))
	})
}

func (e *Engine) run() {
	defer close(e.done)

	ticker := time.NewTicker(e.opts.TickInterval)
	defer ticker.Stop()

	for {
		// a nil channel parks the loop while settled until a perturbation wakes it
		var tick <-chan time.Time
		if e.State() == Running {
			tick = ticker.C
		}

		select {
		case <-e.quit:
			return
		case <-e.wake:
		case <-tick:
			frame, callbacks, ok := e.advance()
			if !ok {
				continue
			}
			for _, fn := range callbacks {
				fn(frame)
			}
		}
	}
}

// advance runs one tick and snapshots the result for the callbacks
func (e *Engine) advance() (Frame, []func(Frame), bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Running {
		return Frame{}, nil, false
	}
	e.tickLocked()
	frame := Frame{
		Tick:      e.ticks,
		Alpha:     e.alpha,
		State:     e.state,
		Positions: e.positionsLocked(),
	}
	return frame, append([]func(Frame){}, e.callbacks...), true
}

// Step advances the simulation by one tick without notifying callbacks.
// It reports whether the engine is still Running afterwards.
func (e *Engine) Step() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case Stopped, Settled:
		return false
	case Initializing:
		e.state = Running
	}
	e.tickLocked()
	return e.state == Running
}

// Settle steps the simulation until it is Settled or maxTicks have run,
// returning the number of ticks taken. An already Settled engine takes none.
func (e *Engine) Settle(maxTicks int) int {
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	n := 0
	for n < maxTicks {
		s := e.State()
		if s == Settled || s == Stopped {
			break
		}
		e.Step()
		n++
	}
	return n
}

func (e *Engine) tickLocked() {
	o := e.opts
	cx, cy := e.viewport.center()

	e.alpha += (e.alphaTarget - e.alpha) * o.AlphaDecay

	applyLinks(e.bodies, e.springs, o.LinkDistance, e.alpha, e.jiggle)
	applyCharge(e.bodies, o.ChargeStrength, distanceMin2, e.alpha, e.jiggle)
	applyCenter(e.bodies, cx, cy)
	applyAxis(e.bodies, cx, cy, o.AxisStrength, e.alpha)
	integrate(e.bodies, o.VelocityDecay)

	e.ticks++
	if e.alpha < o.AlphaMin {
		e.state = Settled
		e.logger.Debug("layout_settled", zap.Int("ticks", e.ticks))
	}
}

func (e *Engine) jiggle() float64 {
	return (e.rand.Float64() - 0.5) * jiggleScale
}

// signal wakes a parked loop
func (e *Engine) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// resumeLocked returns a Settled engine to Running
func (e *Engine) resumeLocked() {
	if e.state == Settled {
		e.state = Running
	}
}

// Reheat raises the energy to at least the current target and resumes ticking
func (e *Engine) Reheat() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Stopped {
		return ErrStopped
	}
	if e.alpha < e.alphaTarget {
		e.alpha = e.alphaTarget
	}
	if e.alpha < e.opts.AlphaMin {
		e.alpha = e.opts.AlphaMin
	}
	e.resumeLocked()
	e.signal()
	return nil
}

// SetAlphaTarget sets the energy the simulation decays toward.
// A target above AlphaMin keeps the engine Running.
func (e *Engine) SetAlphaTarget(target float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Stopped {
		return ErrStopped
	}
	e.alphaTarget = math.Max(0, math.Min(1, target))
	if e.alphaTarget >= e.opts.AlphaMin {
		e.resumeLocked()
		e.signal()
	}
	return nil
}

// SetGraph swaps in a new node and link set and restarts the simulation
// at full energy. Nodes present in both graphs keep their position.
func (e *Engine) SetGraph(g model.Graph) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Stopped {
		return ErrStopped
	}
	if err := e.load(g); err != nil {
		return err
	}
	e.alpha = 1
	e.resumeLocked()
	e.signal()
	return nil
}

// Pin fixes node id at (x, y) until Unpin
func (e *Engine) Pin(id string, x, y float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Stopped {
		return ErrStopped
	}
	i, ok := e.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	b := &e.bodies[i]
	b.pinned, b.fx, b.fy = true, x, y
	e.resumeLocked()
	e.signal()
	return nil
}

// Unpin releases node id to free simulation
func (e *Engine) Unpin(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Stopped {
		return ErrStopped
	}
	i, ok := e.index[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	e.bodies[i].pinned = false
	return nil
}

// Positions returns a snapshot of every node in graph order
func (e *Engine) Positions() []model.NodePosition {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionsLocked()
}

// Position returns a snapshot of node id
func (e *Engine) Position(id string) (model.NodePosition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	if !ok {
		return model.NodePosition{}, false
	}
	return e.snapshot(i), true
}

func (e *Engine) positionsLocked() []model.NodePosition {
	out := make([]model.NodePosition, len(e.bodies))
	for i := range e.bodies {
		out[i] = e.snapshot(i)
	}
	return out
}

func (e *Engine) snapshot(i int) model.NodePosition {
	b := e.bodies[i]
	p := model.NodePosition{
		ID:     e.nodes[i].ID,
		Kind:   e.nodes[i].Kind,
		X:      b.x,
		Y:      b.y,
		VX:     b.vx,
		VY:     b.vy,
		Radius: b.radius,
	}
	if b.pinned {
		fx, fy := b.fx, b.fy
		p.Pinned, p.FX, p.FY = true, &fx, &fy
	}
	return p
}

// Node returns the graph node id
func (e *Engine) Node(id string) (model.Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.graph.Node(id)
}

// NodeAt returns the top-most node whose circle contains the
// simulation-space point (x, y)
func (e *Engine) NodeAt(x, y float64) (model.Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := len(e.bodies) - 1; i >= 0; i-- {
		b := e.bodies[i]
		dx, dy := x-b.x, y-b.y
		if dx*dx+dy*dy <= b.radius*b.radius {
			return e.nodes[i], true
		}
	}
	return model.Node{}, false
}

// State returns the lifecycle state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Alpha returns the current energy
func (e *Engine) Alpha() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alpha
}

// Ticks returns the number of ticks run so far
func (e *Engine) Ticks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ticks
}

// Viewport returns the viewport the engine centers on
func (e *Engine) Viewport() Viewport {
	return e.viewport
}
