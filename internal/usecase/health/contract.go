package health

import "context"

// CollaboratorChecker checks recommendation service availability.
type CollaboratorChecker interface {
	HealthCheck(ctx context.Context) error
}
