package dndbeyond

import (
	"errors"
	"fmt"
)

// ErrMissingCredential indicates no Cobalt cookie was provided.
// This is a precondition failure; no request is attempted.
var ErrMissingCredential = errors.New("no Cobalt cookie available for authentication")

// ErrInvalidCookie indicates the provider rejected the Cobalt cookie.
var ErrInvalidCookie = errors.New("invalid or expired Cobalt cookie")

// StatusError represents a non-200 response from the provider.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
