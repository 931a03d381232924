package ranking

import "context"

// Source loads one ranking table per (half, metric) combination from
// the external delimited files.
type Source interface {
	Load(ctx context.Context, half Half, metric Metric) (Table, error)
}
