package model

// ValidateResponse represents response for GET /api/validate
type ValidateResponse struct {
	Address string `json:"address"`
	Valid   bool   `json:"valid"`
}

// ConnectResponse represents response for POST /api/provider/connect
type ConnectResponse struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
	Source    string `json:"source,omitempty"`
}

// DemoResponse represents response for GET /api/demo
type DemoResponse struct {
	Addresses []string `json:"addresses"`
}
