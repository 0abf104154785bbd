package backend

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("backend unavailable")

// AnalyzeRequest mirrors the body accepted by /api/analyze.
type AnalyzeRequest struct {
	ImageURL string `json:"image_url"`
}

// Analysis mirrors the payload returned by /api/analyze.
type Analysis struct {
	Caption       string   `json:"caption"`
	Tags          []string `json:"tags"`
	DominantColor string   `json:"dominant_color"`
}

// ContactPayload mirrors the body accepted by /api/contact.
type ContactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Confirmation mirrors the success payload returned by /api/contact.
type Confirmation struct {
	Message string `json:"message"`
}

// errorBody mirrors the {"error": ..., "details": ...} payload the backend
// sends with non-2xx responses.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Endpoint, e.StatusCode)
}

// Temporary reports whether retrying later may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
