package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-graph/internal/model"
	"github.com/AlexZinkM/wallet-graph/internal/provider"
)

func decodeConnect(t *testing.T, body []byte) model.ConnectResponse {
	t.Helper()
	var resp model.ConnectResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestProviderHandler_FileProvider(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wallet.cwt")
	require.NoError(t, os.WriteFile(path, []byte(`{"network":"solana","address":"`+address+`"}`), 0o600))
	h := NewProviderHandler(provider.NewFileProvider(path), nil)

	rec := serve(h.Status, http.MethodGet, "/api/provider")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeConnect(t, rec.Body.Bytes()).Connected)

	rec = serve(h.Disconnect, http.MethodPost, "/api/provider/disconnect")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, model.CodeNotConnected, decodeError(t, rec).Code)

	rec = serve(h.Connect, http.MethodPost, "/api/provider/connect")
	require.Equal(t, http.StatusOK, rec.Code)
	conn := decodeConnect(t, rec.Body.Bytes())
	assert.True(t, conn.Connected)
	assert.Equal(t, address, conn.Address)
	assert.Equal(t, provider.FileSource, conn.Source)

	rec = serve(h.Status, http.MethodGet, "/api/provider")
	assert.Equal(t, address, decodeConnect(t, rec.Body.Bytes()).Address)

	rec = serve(h.Disconnect, http.MethodPost, "/api/provider/disconnect")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeConnect(t, rec.Body.Bytes()).Connected)
}

func TestProviderHandler_Unavailable(t *testing.T) {
	t.Parallel()

	h := NewProviderHandler(provider.Unavailable{}, nil)

	rec := serve(h.Connect, http.MethodPost, "/api/provider/connect")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, model.CodeProviderUnavailable, decodeError(t, rec).Code)

	rec = serve(h.Connect, http.MethodGet, "/api/provider/connect")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
