package http_common

// ErrorResponse is the error body every endpoint returns. Message is
// the stable, human-readable part; Error carries the underlying cause
// when it is safe to expose.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
