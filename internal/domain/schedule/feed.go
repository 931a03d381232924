package schedule

import (
	"context"
	"time"
)

// Feed is the external schedule source. Both calls carry their own
// request timeout; a timeout surfaces as an ordinary error.
type Feed interface {
	GetScoreboard(ctx context.Context, date time.Time) ([]Matchup, error)
	GetGameDetail(ctx context.Context, gameID string) (GameDetail, error)
}
