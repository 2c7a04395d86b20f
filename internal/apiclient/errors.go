package apiclient

import (
	"errors"
	"fmt"
)

// ErrTransport marks failures where no usable answer came back: the request
// never completed or the body could not be decoded.
var ErrTransport = errors.New("transport failure")

// APIError is a non-2xx answer. Detail is the backend's own message and may be empty.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api response status %d", e.StatusCode)
	}
	return fmt.Sprintf("api response status %d: %s", e.StatusCode, e.Detail)
}

// DetailOr returns the server detail from err, or fallback when err carries none.
func DetailOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func transportErr(action string, err error) error {
	return fmt.Errorf("%s failed: %w: %w", action, ErrTransport, err)
}
