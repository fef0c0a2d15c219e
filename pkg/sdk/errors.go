package recopanel

import "github.com/kailas-cloud/recopanel/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmptyQuery              = domain.ErrEmptyQuery
	ErrCollaboratorUnavailable = domain.ErrCollaboratorUnavailable
	ErrMalformedResponse       = domain.ErrMalformedResponse
)

// StatusError carries the HTTP status of a rejected call. Use errors.As() to read it.
type StatusError = domain.StatusError
