package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-graph/internal/logging"
	"github.com/AlexZinkM/wallet-graph/internal/model"
	"github.com/AlexZinkM/wallet-graph/internal/provider"
)

// ProviderHandler exposes the wallet capability provider
type ProviderHandler struct {
	provider provider.Provider
	logger   *zap.Logger
}

func NewProviderHandler(p provider.Provider, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{provider: p, logger: logging.OrNop(logger)}
}

// Connect handles POST /api/provider/connect
// @Summary      Connect wallet provider
// @Description  Reads the public address from the configured wallet provider
// @Tags         provider
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Failure      503  {object}  model.ErrorResponse
// @Router       /api/provider/connect [post]
func (h *ProviderHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	conn, err := h.provider.Connect(r.Context())
	if err != nil {
		h.logger.Info("provider_connect_failed", zap.Error(err))
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ConnectResponse{
		Connected: true,
		Address:   conn.Address,
		Source:    conn.Source,
	})
}

// Disconnect handles POST /api/provider/disconnect
// @Summary      Disconnect wallet provider
// @Tags         provider
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /api/provider/disconnect [post]
func (h *ProviderHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if err := h.provider.Disconnect(r.Context()); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ConnectResponse{Connected: false})
}

// Status handles GET /api/provider
// @Summary      Get wallet provider status
// @Tags         provider
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Router       /api/provider [get]
func (h *ProviderHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	conn, ok := h.provider.Connected()
	writeJSON(w, http.StatusOK, model.ConnectResponse{
		Connected: ok,
		Address:   conn.Address,
		Source:    conn.Source,
	})
}
