package api

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 512

// ErrEmptyRequestID is returned when a progress or download call has no job handle
var ErrEmptyRequestID = errors.New("request id is empty")

// StatusError is returned for responses outside the accepted status codes
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error %s %s: %s", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("api error %s %s: %s: %s", e.Method, e.Path, e.Status, e.Body)
}

// IsNotFound reports whether the API answered 404
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a StatusError
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
