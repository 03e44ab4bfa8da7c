package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/wallet-graph/internal/layout"
	"github.com/AlexZinkM/wallet-graph/internal/model"
	"github.com/AlexZinkM/wallet-graph/internal/provider"
	"github.com/AlexZinkM/wallet-graph/solana"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// writeFailure maps err onto its HTTP status and error code
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, solana.ErrInvalidAddress):
		writeError(w, http.StatusBadRequest, model.CodeInvalidAddress, err)
	case errors.Is(err, provider.ErrProviderUnavailable):
		writeError(w, http.StatusServiceUnavailable, model.CodeProviderUnavailable, err)
	case errors.Is(err, provider.ErrNotConnected):
		writeError(w, http.StatusConflict, model.CodeNotConnected, err)
	case errors.Is(err, layout.ErrUnknownNode):
		writeError(w, http.StatusNotFound, model.CodeUnknownNode, err)
	default:
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err)
	}
}

// allowMethod writes 405 unless r uses method
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
		return false
	}
	return true
}
