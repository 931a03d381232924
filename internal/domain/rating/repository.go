package rating

import "context"

// Repository reads the static per-team rating table. Read-only: the
// table ships with the deployment and is never written at runtime.
type Repository interface {
	Get(ctx context.Context, teamID string) (float64, bool, error)
}
