package dto

// MessageRes carries a human-readable acknowledgment.
type MessageRes struct {
	Message string `json:"message"`
}

// ErrorRes is the body of every error response.
type ErrorRes struct {
	Error string `json:"error"`
}
