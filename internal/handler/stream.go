package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-graph/internal/graph"
	"github.com/AlexZinkM/wallet-graph/internal/layout"
	"github.com/AlexZinkM/wallet-graph/internal/logging"
	"github.com/AlexZinkM/wallet-graph/internal/model"
	"github.com/AlexZinkM/wallet-graph/internal/stream"
)

var errSuperseded = errors.New("superseded by a newer query from the same client")

// StreamHandler upgrades to a live layout session
type StreamHandler struct {
	fetcher     WalletFetcher
	hub         *stream.Hub
	upgrader    websocket.Upgrader
	explorerURL string
	layoutOpts  layout.Options
	ctx         context.Context
	logger      *zap.Logger
}

// NewStreamHandler creates a StreamHandler. Sessions end when ctx is done.
func NewStreamHandler(ctx context.Context, fetcher WalletFetcher, hub *stream.Hub, explorerURL string, layoutOpts layout.Options, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		fetcher: fetcher,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		explorerURL: explorerURL,
		layoutOpts:  layoutOpts,
		ctx:         ctx,
		logger:      logging.OrNop(logger),
	}
}

// Serve handles GET /api/ws
// @Summary      Live layout session
// @Description  Upgrades to a websocket streaming layout ticks and accepting drag, zoom, click and hover messages. A new session for the same client supersedes the previous one.
// @Tags         graph
// @Param        address  query  string  true   "Wallet address"
// @Param        width    query  number  false  "Viewport width"
// @Param        height   query  number  false  "Viewport height"
// @Param        client   query  string  false  "Client key, sessions with the same key supersede each other"
// @Success      101
// @Failure      400  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /api/ws [get]
func (h *StreamHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	vp, err := parseViewport(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidRequest, err)
		return
	}

	key := r.URL.Query().Get("client")
	if key == "" {
		key = uuid.NewString()
	}
	// reserve before fetching so a slower, older query cannot win
	gen := h.hub.Reserve(key)
	defer h.hub.Cancel(key, gen)

	data, err := h.fetcher.FetchWalletData(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !h.hub.Current(key, gen) {
		h.logger.Debug("stale_query_discarded", zap.String("client", key), zap.String("address", data.Address))
		writeError(w, http.StatusConflict, model.CodeSuperseded, errSuperseded)
		return
	}

	g := graph.Build(data)
	engine, err := layout.New(g, vp, h.layoutOpts)
	if err != nil {
		writeFailure(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		engine.Stop()
		h.logger.Warn("websocket_upgrade_failed", zap.Error(err))
		return
	}

	session := stream.NewSession(conn, engine, stream.Options{
		ExplorerURL: h.explorerURL,
		Wallet:      data,
		Logger:      h.logger.With(zap.String("client", key)),
	})
	if !h.hub.Open(key, gen, session) {
		h.logger.Debug("stale_query_discarded", zap.String("client", key), zap.String("address", data.Address))
		session.Close()
		return
	}
	defer h.hub.Release(key, session)

	if err := session.Run(h.ctx, stream.GraphData{
		Address:   data.Address,
		Graph:     g,
		Synthetic: data.Synthetic,
		Notice:    data.Notice,
	}); err != nil {
		h.logger.Debug("session_ended", zap.Error(err))
	}
}
