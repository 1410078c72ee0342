// Package apierror defines the error envelopes every handler responds with.
// Clients only ever see these shapes; raw GORM or driver errors stay inside
// the process.
package apierror

// APIError carries a single human-readable detail line.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError extends the envelope with per-field messages from the
// validator, keyed by the JSON field name.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}
