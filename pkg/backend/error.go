package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError carries the HTTP status and raw body of a failed backend call.
// The body is kept verbatim so callers can extract the most specific message
// the backend produced.
type APIError struct {
	Method string
	Path   string
	Status int
	body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.Status)
}

// StatusCode returns the HTTP status of the failed call.
func (e *APIError) StatusCode() int {
	if e == nil {
		return 0
	}
	return e.Status
}

// Body returns the raw response body.
func (e *APIError) Body() string {
	if e == nil {
		return ""
	}
	return string(e.body)
}

// Message walks the known backend error-body shapes from most to least
// specific: {"detail": ...}, then {"error": ...}, then {"message": ...}.
// It returns the fallback when nothing usable is present.
func (e *APIError) Message(fallback string) string {
	if e == nil || len(e.body) == 0 {
		return fallback
	}
	var shape struct {
		Detail  string `json:"detail"`
		Err     string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.body, &shape); err != nil {
		return fallback
	}
	for _, candidate := range []string{shape.Detail, shape.Err, shape.Message} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return fallback
}
