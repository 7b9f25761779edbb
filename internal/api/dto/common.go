package dto

// ErrorResponse is the shape of every error body: a human-readable message,
// plus per-field details when the failure is structural validation.
type ErrorResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}
