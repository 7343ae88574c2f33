package rclone

import (
	"fmt"
)

// TransportError means the request went out but the daemon never answered.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("no response from rclone RC server at %s. Is rclone running? (%v)", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the daemon.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rclone RC API error: %d - %s", e.StatusCode, string(e.Body))
}

// RequestSetupError is a local failure before anything was sent.
type RequestSetupError struct {
	Err error
}

func (e *RequestSetupError) Error() string {
	return fmt.Sprintf("error setting up request: %v", e.Err)
}

func (e *RequestSetupError) Unwrap() error {
	return e.Err
}
