package entities

// ErrorResponse is the standard error payload returned by the API
type ErrorResponse struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// Notice is a non-fatal, user-visible message attached to a response,
// e.g. "ticker already present in wishlist"
type Notice struct {
	Level   string `json:"level"` // info, warning
	Message string `json:"message"`
}

func InfoNotice(message string) *Notice {
	return &Notice{Level: "info", Message: message}
}

func WarningNotice(message string) *Notice {
	return &Notice{Level: "warning", Message: message}
}
