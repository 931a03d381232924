package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/mosescsmith/cbb/internal/domain/schedule"
	"github.com/mosescsmith/cbb/internal/platform/logging"
)

// PreloadReport summarizes one warm-up batch.
type PreloadReport struct {
	Date      string `json:"date"`
	Requested int    `json:"requested"`
	Warmed    int    `json:"warmed"`
	Unmatched int    `json:"unmatched"`
	Failed    int    `json:"failed"`
}

// PreloadService warms the per-team cache for every team on a day's
// scoreboard, out of band of request traffic. Workers defaults to 1,
// keeping the batch sequential against the feed; raise it only when
// the feed tolerates parallel day-walks.
type PreloadService struct {
	feed    schedule.Feed
	stats   TeamStatsProvider
	workers int
	logger  *logging.Logger
}

func NewPreloadService(feed schedule.Feed, stats TeamStatsProvider, workers int, logger *logging.Logger) *PreloadService {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PreloadService{feed: feed, stats: stats, workers: workers, logger: logger}
}

// PreloadDay fetches the day's scoreboard and warms the cache for each
// distinct team slug appearing on it.
func (s *PreloadService) PreloadDay(ctx context.Context, date time.Time) (PreloadReport, error) {
	ctx, span := startUsecaseSpan(ctx, "PreloadService.PreloadDay")
	defer span.End()

	matchups, err := s.feed.GetScoreboard(ctx, date)
	if err != nil {
		return PreloadReport{}, fmt.Errorf("%w: scoreboard for %s: %v", ErrDependencyUnavailable, date.Format("2006-01-02"), err)
	}

	slugs := make(map[string]struct{}, len(matchups)*2)
	for _, m := range matchups {
		for _, slug := range []string{m.HomeSlug, m.AwaySlug} {
			slug = strings.ToLower(strings.TrimSpace(slug))
			if slug != "" {
				slugs[slug] = struct{}{}
			}
		}
	}
	ordered := make([]string, 0, len(slugs))
	for slug := range slugs {
		ordered = append(ordered, slug)
	}
	sort.Strings(ordered)

	report := PreloadReport{Date: date.Format("2006-01-02"), Requested: len(ordered)}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return PreloadReport{}, fmt.Errorf("create preload pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, slug := range ordered {
		slug := slug
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			result, err := s.stats.GetTeamStats(ctx, slug, slug)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				report.Failed++
				s.logger.WarnContext(ctx, "preload failed", "team", slug, "error", err)
			case !result.Matched:
				report.Unmatched++
			default:
				report.Warmed++
			}
		}); err != nil {
			wg.Done()
			mu.Lock()
			report.Failed++
			mu.Unlock()
		}
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "preload complete",
		"date", report.Date,
		"requested", report.Requested,
		"warmed", report.Warmed,
		"unmatched", report.Unmatched,
		"failed", report.Failed,
	)
	return report, nil
}
