package apiclient

import (
	"fmt"
	"net/http"
)

// RequestError is returned for every failed backend call: a non-2xx response
// (Status and Body set) or a network failure (Status 0, Err set).
type RequestError struct {
	Method string
	Path   string
	Status int
	Body   []byte
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d %s: %s",
		e.Method, e.Path, e.Status, http.StatusText(e.Status), truncate(e.Body, 256))
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
