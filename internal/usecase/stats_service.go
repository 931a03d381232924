package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mosescsmith/cbb/internal/domain/teamstats"
	"github.com/mosescsmith/cbb/internal/platform/logging"
)

// GameFetcher pulls a team's recent games from the schedule feed.
// Implemented by HistoryService.
type GameFetcher interface {
	Fetch(ctx context.Context, teamID, teamName string, daysBack int) ([]teamstats.GameStatRecord, error)
}

// TeamResolver is the slice of ResolverService the cache manager
// needs.
type TeamResolver interface {
	Resolve(ctx context.Context, rawID, rawName string) (Resolution, error)
}

// StatsCacheConfig carries the staleness policy. The constants are
// empirically chosen; override through configuration, not code.
type StatsCacheConfig struct {
	TTL                     time.Duration
	GracePeriod             time.Duration
	FullLookbackDays        int
	IncrementalLookbackDays int
}

func DefaultStatsCacheConfig() StatsCacheConfig {
	return StatsCacheConfig{
		TTL:                     6 * time.Hour,
		GracePeriod:             10 * time.Minute,
		FullLookbackDays:        30,
		IncrementalLookbackDays: 7,
	}
}

func (c StatsCacheConfig) normalized() StatsCacheConfig {
	def := DefaultStatsCacheConfig()
	if c.TTL <= 0 {
		c.TTL = def.TTL
	}
	if c.GracePeriod <= 0 {
		c.GracePeriod = def.GracePeriod
	}
	if c.FullLookbackDays <= 0 {
		c.FullLookbackDays = def.FullLookbackDays
	}
	if c.IncrementalLookbackDays <= 0 {
		c.IncrementalLookbackDays = def.IncrementalLookbackDays
	}
	return c
}

// TeamStatsResult is what callers get back. The manager never raises
// for fetch-layer trouble: Stale flags a failed refresh served from
// the old record, and an unmatched name comes back with suggestions
// instead of an error.
type TeamStatsResult struct {
	Cache       teamstats.TeamStatsCache
	Matched     bool
	Stale       bool
	Suggestions []Suggestion
}

// TeamStatsService orchestrates resolver, fetcher, and aggregation
// behind the staleness state machine. All transitions are caller
// triggered; there is no background refresh.
type TeamStatsService struct {
	resolver TeamResolver
	repo     teamstats.Repository
	fetcher  GameFetcher
	cfg      StatsCacheConfig
	logger   *logging.Logger
	now      func() time.Time
}

func NewTeamStatsService(resolver TeamResolver, repo teamstats.Repository, fetcher GameFetcher, cfg StatsCacheConfig, logger *logging.Logger) *TeamStatsService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TeamStatsService{
		resolver: resolver,
		repo:     repo,
		fetcher:  fetcher,
		cfg:      cfg.normalized(),
		logger:   logger,
		now:      time.Now,
	}
}

// GetTeamStats resolves the team and serves its cache, refreshing per
// the state machine:
//
//	no cache            -> full-lookback fetch, persist fresh or empty
//	cached, empty       -> full-lookback re-attempt every call
//	cached, within TTL  -> served unchanged
//	cached, past TTL    -> incremental fetch merged by game id; on
//	                       failure the old record is served stale
//
// A record updated within the grace period is treated as fresh even
// past its nominal TTL, so a bulk pre-load does not trigger a refresh
// storm.
func (s *TeamStatsService) GetTeamStats(ctx context.Context, rawID, rawName string) (TeamStatsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamStatsService.GetTeamStats")
	defer span.End()

	rawID = strings.TrimSpace(rawID)
	rawName = strings.TrimSpace(rawName)
	if rawID == "" && rawName == "" {
		return TeamStatsResult{}, fmt.Errorf("%w: team id or name is required", ErrInvalidInput)
	}

	resolution, err := s.resolver.Resolve(ctx, rawID, rawName)
	if err != nil {
		return TeamStatsResult{}, err
	}
	if !resolution.Matched {
		return TeamStatsResult{Suggestions: resolution.Suggestions}, nil
	}

	teamID := resolution.Match.ResolvedID
	teamName := resolution.Match.MatchedName

	cached, found, err := s.repo.Get(ctx, teamID)
	if err != nil {
		return TeamStatsResult{}, fmt.Errorf("load team cache: %w", err)
	}
	if !found {
		return s.populate(ctx, teamID, teamName)
	}

	age := s.now().Sub(cached.LastUpdated)

	if len(cached.Games) == 0 {
		// No baseline to merge into, so re-attempt the full window on
		// every call rather than caching the miss.
		return s.refill(ctx, cached)
	}

	if age < s.cfg.TTL || age < s.cfg.GracePeriod {
		return TeamStatsResult{Cache: cached, Matched: true}, nil
	}

	return s.refresh(ctx, cached)
}

// populate handles the no-cache state: one full-lookback fetch. A
// transport halt leaves nothing persisted so the next call retries; a
// clean zero-game result is persisted as an empty record.
func (s *TeamStatsService) populate(ctx context.Context, teamID, teamName string) (TeamStatsResult, error) {
	games, err := s.fetcher.Fetch(ctx, teamID, teamName, s.cfg.FullLookbackDays)
	if err != nil {
		s.logger.WarnContext(ctx, "initial fetch failed", "team_id", teamID, "error", err)
		return TeamStatsResult{
			Cache:   teamstats.TeamStatsCache{TeamID: teamID, TeamName: teamName},
			Matched: true,
		}, nil
	}

	cache := teamstats.Build(teamID, teamName, games, s.now())
	if err := s.repo.Put(ctx, cache); err != nil {
		return TeamStatsResult{}, fmt.Errorf("persist team cache: %w", err)
	}
	return TeamStatsResult{Cache: cache, Matched: true}, nil
}

// refill re-attempts a full fetch for an empty record, promoting it to
// fresh once games finally appear.
func (s *TeamStatsService) refill(ctx context.Context, cached teamstats.TeamStatsCache) (TeamStatsResult, error) {
	games, err := s.fetcher.Fetch(ctx, cached.TeamID, cached.TeamName, s.cfg.FullLookbackDays)
	if err != nil || len(games) == 0 {
		if err != nil {
			s.logger.WarnContext(ctx, "empty-cache refetch failed", "team_id", cached.TeamID, "error", err)
		}
		return TeamStatsResult{Cache: cached, Matched: true}, nil
	}

	cache := teamstats.Build(cached.TeamID, cached.TeamName, games, s.now())
	if err := s.repo.Put(ctx, cache); err != nil {
		return TeamStatsResult{}, fmt.Errorf("persist team cache: %w", err)
	}
	return TeamStatsResult{Cache: cache, Matched: true}, nil
}

// refresh runs the incremental fetch for a stale record, merging by
// game id. On failure the existing record is served with stale=true.
func (s *TeamStatsService) refresh(ctx context.Context, cached teamstats.TeamStatsCache) (TeamStatsResult, error) {
	games, err := s.fetcher.Fetch(ctx, cached.TeamID, cached.TeamName, s.cfg.IncrementalLookbackDays)
	if err != nil {
		s.logger.WarnContext(ctx, "incremental refresh failed, serving stale", "team_id", cached.TeamID, "error", err)
		return TeamStatsResult{Cache: cached, Matched: true, Stale: true}, nil
	}

	merged := teamstats.MergeGames(cached.Games, games)
	cache := teamstats.Build(cached.TeamID, cached.TeamName, merged, s.now())
	if err := s.repo.Put(ctx, cache); err != nil {
		return TeamStatsResult{}, fmt.Errorf("persist team cache: %w", err)
	}
	return TeamStatsResult{Cache: cache, Matched: true}, nil
}
