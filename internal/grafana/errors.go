package grafana

import "fmt"

// TransportError is returned when Grafana responds with a non-2xx status.
// It carries the raw response body for diagnostics and is never retried.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("grafana API returned status %d: %s", e.StatusCode, e.Body)
}

// DecodeError is returned when response bytes do not match the expected wire
// schema. The raw payload is attached for diagnosis.
type DecodeError struct {
	Err error
	Raw []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding grafana response: %v (raw: %s)", e.Err, e.Raw)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError is returned when caller-supplied tool arguments violate a
// documented precondition. It is raised before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
