package alias

import "context"

// Repository persists the alias mapping as one record, rewritten
// wholesale. Implementations normalize keys on write; last write wins.
type Repository interface {
	Get(ctx context.Context, rawName string) (string, bool, error)
	Set(ctx context.Context, rawName, teamID string) error
	Remove(ctx context.Context, rawName string) error
	All(ctx context.Context) (Mapping, error)
}
