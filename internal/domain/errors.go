package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery signals a query that is empty after trimming.
	ErrEmptyQuery = errors.New("empty query")
	// ErrCollaboratorUnavailable signals a transport failure or non-2xx answer from the collaborator.
	ErrCollaboratorUnavailable = errors.New("recommendation service unavailable")
	// ErrMalformedResponse signals a collaborator body that is not a JSON array of items.
	ErrMalformedResponse = errors.New("malformed recommendation response")
)

// StatusError wraps ErrCollaboratorUnavailable with the HTTP status the collaborator answered.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: status %d: %s", ErrCollaboratorUnavailable.Error(), e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: status %d", ErrCollaboratorUnavailable.Error(), e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrCollaboratorUnavailable }

// NewStatusError creates a collaborator status error.
func NewStatusError(statusCode int, detail string) error {
	return &StatusError{StatusCode: statusCode, Detail: detail}
}
