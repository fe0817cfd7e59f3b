package types

// DiscoverRequest represents a service discovery request
type DiscoverRequest struct {
	Message string `json:"message" binding:"required"`
	Limit   int    `json:"limit,omitempty"`
}

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID   string                 `json:"tool_id" binding:"required"`
	Params   map[string]interface{} `json:"params"`
	ClientID *string                `json:"client_id,omitempty"`
}

// BatchRequest carries the inputs of a batch conversion
type BatchRequest struct {
	Values []float64 `json:"values" binding:"required"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type   string                 `json:"type"`
	ID     string                 `json:"id,omitempty"`
	ToolID string                 `json:"tool_id,omitempty"`
	Params map[string]interface{} `json:"params,omitempty"`
}
