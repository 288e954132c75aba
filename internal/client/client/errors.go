package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrConnection means no response was received (refused, reset, DNS...).
	ErrConnection = errors.New("server not reachable")
	// ErrTimeout means the request deadline passed before a response.
	ErrTimeout = errors.New("request timed out")
	// ErrUnavailable matches 503 responses.
	ErrUnavailable = errors.New("service unavailable")
	// ErrUnauthorized matches 401 responses.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx backend response.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrUnavailable:
		return e.Status == http.StatusServiceUnavailable
	}
	return false
}

// BackendMessage extracts the human-readable message the backend attached
// to err, if any.
func BackendMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
