package client

import (
	"errors"
	"fmt"
)

// HTTPError is returned when the API answers with a non-2xx status
type HTTPError struct {
	Status int
	// Detail is the server's "detail" message, when it sent one
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP error! status: %d (%s)", e.Status, e.Detail)
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// NetworkError is returned when the API could not be reached or its
// response could not be read
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsHTTPError reports whether err carries an HTTPError
func IsHTTPError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// IsNetworkError reports whether err carries a NetworkError
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
