package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes used in ErrorResponse
const (
	CodeInvalidAddress      = "invalid_address"
	CodeProviderUnavailable = "provider_unavailable"
	CodeNotConnected        = "not_connected"
	CodeInvalidRequest      = "invalid_request"
	CodeUnknownNode         = "unknown_node"
	CodeSuperseded          = "superseded"
	CodeInternal            = "internal"
)
