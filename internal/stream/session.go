package stream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-graph/internal/interaction"
	"github.com/AlexZinkM/wallet-graph/internal/layout"
	"github.com/AlexZinkM/wallet-graph/internal/logging"
	"github.com/AlexZinkM/wallet-graph/internal/model"
	"github.com/AlexZinkM/wallet-graph/solana"
)

const (
	DefaultBuffer = 64

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 4096
)

var (
	ErrClosed         = errors.New("session closed")
	errUnknownMessage = errors.New("unknown message type")
)

const DefaultRelated = 5

type Options struct {
	Buffer      int
	ExplorerURL string
	Wallet      *model.WalletData // backs the transaction list of select frames
	Related     int
	Logger      *zap.Logger
}

// Session drives one layout engine and its interaction controller
// over a websocket connection. The session owns the engine.
type Session struct {
	id         string
	conn       *websocket.Conn
	engine     *layout.Engine
	controller *interaction.Controller
	out        chan Frame
	done       chan struct{}
	writerDone chan struct{}
	writing    atomic.Bool
	closeOnce  sync.Once
	logger     *zap.Logger
}

// NewSession binds engine to conn. Nothing runs until Run.
func NewSession(conn *websocket.Conn, engine *layout.Engine, opts Options) *Session {
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultBuffer
	}
	if opts.Related <= 0 {
		opts.Related = DefaultRelated
	}
	s := &Session{
		id:         uuid.NewString(),
		conn:       conn,
		engine:     engine,
		out:        make(chan Frame, opts.Buffer),
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
	}
	s.logger = logging.OrNop(opts.Logger).With(zap.String("session", s.id))

	s.controller = interaction.New(engine, interaction.Options{
		ExplorerURL: opts.ExplorerURL,
		Logger:      s.logger,
		Opener: interaction.OpenerFunc(func(url string) error {
			return s.send(Frame{Type: FrameOpen, Data: OpenData{URL: url}})
		}),
	})
	s.controller.OnSelect(func(n model.Node) {
		_ = s.send(Frame{Type: FrameSelect, Data: selection(opts.Wallet, n, opts.Related, opts.ExplorerURL)})
	})
	s.controller.OnHover(func(tip *interaction.Tooltip) {
		_ = s.send(Frame{Type: FrameHover, Data: tip})
	})
	s.controller.OnTransform(func(t interaction.Transform) {
		_ = s.send(Frame{Type: FrameTransform, Data: t})
	})
	engine.OnTick(func(f layout.Frame) {
		s.offer(Frame{Type: FrameTick, Data: f})
	})
	return s
}

// selection looks up the transactions and explorer page behind a selected node
func selection(data *model.WalletData, n model.Node, related int, explorer string) SelectData {
	sel := SelectData{Node: n, Transactions: []model.Transaction{}}
	switch {
	case n.Kind == model.NodeTransaction:
		sel.ExplorerURL = solana.ExplorerTxURL(explorer, n.ID)
	case n.ID != model.UnknownAddress:
		sel.ExplorerURL = solana.ExplorerAccountURL(explorer, n.ID)
	}
	if data == nil {
		return sel
	}
	if n.Kind == model.NodeTransaction {
		if tx, ok := data.Find(n.ID); ok {
			sel.Transactions = append(sel.Transactions, tx)
		}
		return sel
	}
	sel.Transactions = data.Related(n.ID, related)
	return sel
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Controller returns the session's interaction controller
func (s *Session) Controller() *interaction.Controller { return s.controller }

// Run sends the opening graph frame, starts the engine and serves client
// messages until the connection drops or ctx is done. The session is
// closed when Run returns.
func (s *Session) Run(ctx context.Context, initial GraphData) error {
	defer s.Close()

	s.writing.Store(true)
	go s.writeLoop()

	stop := context.AfterFunc(ctx, s.Close)
	defer stop()

	initial.Positions = s.engine.Positions()
	if err := s.send(Frame{Type: FrameGraph, Data: initial}); err != nil {
		return err
	}
	if err := s.engine.Start(); err != nil {
		return fmt.Errorf("failed to start layout: %w", err)
	}
	s.logger.Info("session_started", zap.String("address", initial.Address))

	s.conn.SetReadLimit(maxMessage)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("session_read_failed", zap.Error(err))
				return err
			}
			return nil
		}
		if err := s.handle(msg); err != nil {
			s.logger.Debug("session_message_rejected", zap.String("type", msg.Type), zap.Error(err))
			_ = s.send(Frame{Type: FrameError, Data: ErrorData{Message: err.Error(), Request: msg.Type}})
		}
	}
}

func (s *Session) handle(msg Message) error {
	c := s.controller
	switch msg.Type {
	case MsgDragStart:
		return c.DragStart(msg.ID, msg.X, msg.Y)
	case MsgDragMove:
		return c.DragMove(msg.X, msg.Y)
	case MsgDragEnd:
		return c.DragEnd()
	case MsgZoom:
		c.Zoom(msg.Factor, msg.X, msg.Y)
	case MsgPan:
		c.Pan(msg.DX, msg.DY)
	case MsgClick:
		if msg.ID != "" {
			return c.Click(msg.ID)
		}
		_, err := c.ClickAt(msg.X, msg.Y)
		return err
	case MsgHover:
		if msg.ID == "" {
			node, ok := c.HitTest(msg.X, msg.Y)
			if !ok {
				c.HoverLeave()
				return nil
			}
			msg.ID = node.ID
		}
		return c.HoverEnter(msg.ID, msg.X, msg.Y)
	case MsgHoverOut:
		c.HoverLeave()
	default:
		return fmt.Errorf("%w: %q", errUnknownMessage, msg.Type)
	}
	return nil
}

// send queues a frame, waiting for room unless the session is closing
func (s *Session) send(f Frame) error {
	f.Session = s.id
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.out <- f:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

// offer queues a frame only if there is room
func (s *Session) offer(f Frame) {
	f.Session = s.id
	select {
	case <-s.done:
	case s.out <- f:
	default:
		s.logger.Debug("tick_frame_dropped")
	}
}

func (s *Session) writeLoop() {
	defer close(s.writerDone)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-s.done:
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case f := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(f); err != nil {
				s.logger.Debug("session_write_failed", zap.Error(err))
				go s.Close()
				return
			}
		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				go s.Close()
				return
			}
		}
	}
}

// Close stops the engine, releases any pin and closes the connection.
// No tick frame is produced after Close returns.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		// done first so blocked senders give up before the controller lock is taken
		close(s.done)
		s.engine.Stop()
		s.controller.Close()

		if s.writing.Load() {
			select {
			case <-s.writerDone:
			case <-time.After(writeWait):
			}
		}
		_ = s.conn.Close()
		s.logger.Info("session_closed", zap.Int("ticks", s.engine.Ticks()))
	})
}

// Done is closed once the session is closed
func (s *Session) Done() <-chan struct{} { return s.done }
