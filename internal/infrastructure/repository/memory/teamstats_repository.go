package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mosescsmith/cbb/internal/domain/teamstats"
)

// TeamStatsRepository is the in-memory cache backend, used when no
// data directory is configured and in tests.
type TeamStatsRepository struct {
	mu    sync.RWMutex
	items map[string]teamstats.TeamStatsCache
}

func NewTeamStatsRepository(caches []teamstats.TeamStatsCache) *TeamStatsRepository {
	items := make(map[string]teamstats.TeamStatsCache, len(caches))
	for _, cache := range caches {
		items[cache.TeamID] = cache
	}
	return &TeamStatsRepository{items: items}
}

func (r *TeamStatsRepository) Get(_ context.Context, teamID string) (teamstats.TeamStatsCache, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cache, ok := r.items[teamID]
	return cache, ok, nil
}

func (r *TeamStatsRepository) Put(_ context.Context, cache teamstats.TeamStatsCache) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[cache.TeamID] = cache
	return nil
}

func (r *TeamStatsRepository) ListRefs(_ context.Context) ([]teamstats.CachedTeamRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	refs := make([]teamstats.CachedTeamRef, 0, len(r.items))
	for _, cache := range r.items {
		refs = append(refs, teamstats.CachedTeamRef{
			TeamID:    cache.TeamID,
			TeamName:  cache.TeamName,
			GameCount: len(cache.Games),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].TeamID < refs[j].TeamID })
	return refs, nil
}
