package teamstats

import "context"

// CachedTeamRef is a lightweight listing of one cached team, used by
// the resolver's fuzzy scan without loading full game lists.
type CachedTeamRef struct {
	TeamID    string
	TeamName  string
	GameCount int
}

type Repository interface {
	Get(ctx context.Context, teamID string) (TeamStatsCache, bool, error)
	Put(ctx context.Context, cache TeamStatsCache) error
	ListRefs(ctx context.Context) ([]CachedTeamRef, error)
}
