package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mosescsmith/cbb/internal/domain/ranking"
	"github.com/mosescsmith/cbb/internal/platform/logging"
	"github.com/mosescsmith/cbb/internal/platform/namematch"
)

const defaultRankingReload = 5 * time.Minute

// RankingCandidate is one fuzzy lookup hit against a ranking table.
type RankingCandidate struct {
	Row   ranking.Row
	Score float64
}

// RankingService holds the six (half, metric) tables in memory and
// reloads them lazily once they are older than the reload interval.
// No background job: the first lookup past the deadline pays for the
// reload.
type RankingService struct {
	source         ranking.Source
	reloadInterval time.Duration
	threshold      float64
	logger         *logging.Logger
	now            func() time.Time

	mu       sync.Mutex
	tables   map[tableKey]ranking.Table
	lastLoad time.Time
}

type tableKey struct {
	half   ranking.Half
	metric ranking.Metric
}

func NewRankingService(source ranking.Source, reloadInterval time.Duration, threshold float64, logger *logging.Logger) *RankingService {
	if reloadInterval <= 0 {
		reloadInterval = defaultRankingReload
	}
	if threshold <= 0 || threshold > 1 {
		threshold = namematch.DefaultMatchThreshold
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RankingService{
		source:         source,
		reloadInterval: reloadInterval,
		threshold:      threshold,
		logger:         logger,
		now:            time.Now,
	}
}

// BestMatch resolves teamName against one table: direct normalized
// hit, then variants, then a fuzzy scan. Confidence mirrors the main
// resolver's ladder.
func (s *RankingService) BestMatch(ctx context.Context, half ranking.Half, metric ranking.Metric, teamName string) (ranking.Row, float64, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingService.BestMatch")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return ranking.Row{}, 0, false, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	table, err := s.table(ctx, half, metric)
	if err != nil {
		return ranking.Row{}, 0, false, err
	}

	normalized := namematch.Normalize(teamName)
	if row, ok := table[normalized]; ok {
		return row, 1.0, true, nil
	}
	for _, variant := range namematch.Variants(teamName) {
		if row, ok := table[namematch.Normalize(variant)]; ok {
			return row, 0.9, true, nil
		}
	}

	var bestRow ranking.Row
	bestScore := 0.0
	for key, row := range table {
		if !namematch.IsLikelyMatch(teamName, row.Team, s.threshold) {
			continue
		}
		score := namematch.Similarity(normalized, key)
		if score > bestScore {
			bestRow, bestScore = row, score
		}
	}
	if bestScore == 0 {
		return ranking.Row{}, 0, false, nil
	}
	return bestRow, bestScore, true, nil
}

// Candidates returns the fuzzy hit list above floor, best first,
// capped at limit. Meant for UI disambiguation next to BestMatch.
func (s *RankingService) Candidates(ctx context.Context, half ranking.Half, metric ranking.Metric, teamName string, floor float64, limit int) ([]RankingCandidate, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingService.Candidates")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if floor <= 0 || floor >= 1 {
		floor = 0.5
	}
	if limit <= 0 {
		limit = 5
	}

	table, err := s.table(ctx, half, metric)
	if err != nil {
		return nil, err
	}

	normalized := namematch.Normalize(teamName)
	candidates := make([]RankingCandidate, 0, len(table))
	for key, row := range table {
		score := namematch.Similarity(normalized, key)
		if score <= floor {
			continue
		}
		candidates = append(candidates, RankingCandidate{Row: row, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Row.Rank < candidates[j].Row.Rank
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// table serves one table, reloading all six when the in-memory set is
// absent or expired. A failed reload keeps serving the previous set.
func (s *RankingService) table(ctx context.Context, half ranking.Half, metric ranking.Metric) (ranking.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.tables == nil || now.Sub(s.lastLoad) > s.reloadInterval {
		loaded, err := s.loadAll(ctx)
		if err != nil {
			if s.tables == nil {
				return nil, fmt.Errorf("load ranking tables: %w", err)
			}
			s.logger.WarnContext(ctx, "ranking reload failed, serving previous tables", "error", err)
		} else {
			s.tables = loaded
			s.lastLoad = now
		}
	}

	table, ok := s.tables[tableKey{half: half, metric: metric}]
	if !ok {
		return nil, fmt.Errorf("%w: ranking table %s/%s", ErrNotFound, half, metric)
	}
	return table, nil
}

func (s *RankingService) loadAll(ctx context.Context) (map[tableKey]ranking.Table, error) {
	loaded := make(map[tableKey]ranking.Table, len(ranking.Halves)*len(ranking.Metrics))
	for _, half := range ranking.Halves {
		for _, metric := range ranking.Metrics {
			table, err := s.source.Load(ctx, half, metric)
			if err != nil {
				return nil, fmt.Errorf("load %s/%s: %w", half, metric, err)
			}
			loaded[tableKey{half: half, metric: metric}] = table
		}
	}
	return loaded, nil
}
