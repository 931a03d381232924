package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mosescsmith/cbb/internal/domain/rating"
	"github.com/mosescsmith/cbb/internal/domain/schedule"
	"github.com/mosescsmith/cbb/internal/domain/teamstats"
	"github.com/mosescsmith/cbb/internal/platform/logging"
	"github.com/mosescsmith/cbb/internal/platform/namematch"
)

// defaultMaxConsecutiveFailures halts the day-walk once the feed looks
// down, instead of burning through the rest of the window.
const defaultMaxConsecutiveFailures = 3

// HistoryService walks the schedule feed backward day by day and
// extracts per-half lines for one team. It implements GameFetcher for
// the stats cache manager.
type HistoryService struct {
	feed        schedule.Feed
	ratings     rating.Repository
	maxFailures int
	logger      *logging.Logger
	now         func() time.Time
}

func NewHistoryService(feed schedule.Feed, ratings rating.Repository, logger *logging.Logger) *HistoryService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &HistoryService{
		feed:        feed,
		ratings:     ratings,
		maxFailures: defaultMaxConsecutiveFailures,
		logger:      logger,
		now:         time.Now,
	}
}

// SetMaxConsecutiveFailures overrides the failure cap that halts the
// day-walk. Values below 1 are ignored.
func (s *HistoryService) SetMaxConsecutiveFailures(n int) {
	if n >= 1 {
		s.maxFailures = n
	}
}

// Fetch collects the team's games from the last daysBack days, most
// recent day first. Transport failures count toward a consecutive-
// failure breaker; once it trips the walk stops and whatever was
// collected so far is returned alongside ErrDependencyUnavailable.
func (s *HistoryService) Fetch(ctx context.Context, teamID, teamName string, daysBack int) ([]teamstats.GameStatRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "HistoryService.Fetch")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" || daysBack <= 0 {
		return nil, fmt.Errorf("%w: team name and lookback are required", ErrInvalidInput)
	}

	variants := namematch.Variants(teamName)
	today := s.now().UTC().Truncate(24 * time.Hour)

	var games []teamstats.GameStatRecord
	seen := make(map[string]struct{})
	consecutiveFailures := 0

	// Strictly descending days: the breaker's consecutive semantics
	// depend on walk order.
	for offset := 0; offset < daysBack; offset++ {
		day := today.AddDate(0, 0, -offset)

		matchups, err := s.feed.GetScoreboard(ctx, day)
		if err != nil {
			consecutiveFailures++
			s.logger.WarnContext(ctx, "scoreboard fetch failed",
				"date", day.Format("2006-01-02"),
				"consecutive_failures", consecutiveFailures,
				"error", err,
			)
			if consecutiveFailures >= s.maxFailures {
				return games, fmt.Errorf("%w: schedule feed unreachable after %d consecutive failures", ErrDependencyUnavailable, consecutiveFailures)
			}
			continue
		}
		consecutiveFailures = 0

		for _, matchup := range matchups {
			if _, ok := seen[matchup.GameID]; ok {
				continue
			}
			if !slugMatchesAny(matchup.HomeSlug, variants) && !slugMatchesAny(matchup.AwaySlug, variants) {
				continue
			}

			record, ok, err := s.extractGame(ctx, matchup, teamID, variants)
			if err != nil {
				consecutiveFailures++
				s.logger.WarnContext(ctx, "game detail fetch failed",
					"game_id", matchup.GameID,
					"consecutive_failures", consecutiveFailures,
					"error", err,
				)
				if consecutiveFailures >= s.maxFailures {
					return games, fmt.Errorf("%w: schedule feed unreachable after %d consecutive failures", ErrDependencyUnavailable, consecutiveFailures)
				}
				continue
			}
			consecutiveFailures = 0
			if !ok {
				continue
			}

			seen[record.GameID] = struct{}{}
			games = append(games, record)
		}
	}

	return games, nil
}

// extractGame confirms the team actually played and pulls the two
// half lines. ok=false means the scoreboard candidate was a slug
// near-miss, not an error.
func (s *HistoryService) extractGame(ctx context.Context, matchup schedule.Matchup, teamID string, variants []string) (teamstats.GameStatRecord, bool, error) {
	detail, err := s.feed.GetGameDetail(ctx, matchup.GameID)
	if err != nil {
		return teamstats.GameStatRecord{}, false, err
	}

	var team, opponent *schedule.TeamLine
	for i := range detail.Teams {
		line := &detail.Teams[i]
		if line.TeamID == teamID || slugMatchesAny(line.Slug, variants) {
			team = line
		} else {
			opponent = line
		}
	}
	if team == nil || opponent == nil {
		return teamstats.GameStatRecord{}, false, nil
	}
	if len(team.Periods) < 2 || len(opponent.Periods) < 2 {
		return teamstats.GameStatRecord{}, false, nil
	}

	record := teamstats.GameStatRecord{
		GameID:       matchup.GameID,
		Date:         detail.Date,
		OpponentID:   opponent.Slug,
		OpponentName: opponent.Name,
		IsHome:       team.IsHome,
		FirstHalf:    teamstats.HalfLine{Scored: team.Periods[0], Allowed: opponent.Periods[0]},
		SecondHalf:   teamstats.HalfLine{Scored: team.Periods[1], Allowed: opponent.Periods[1]},
	}
	if record.Date.IsZero() {
		record.Date = matchup.Date
	}

	if s.ratings != nil {
		value, found, err := s.ratings.Get(ctx, opponent.Slug)
		if err == nil && found {
			record.OpponentRating = &value
		}
	}

	return record, true, nil
}

// slugMatchesAny reports whether a feed slug lines up with any name
// variant, exactly or by leading word.
func slugMatchesAny(slug string, variants []string) bool {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return false
	}
	slugHead, _, _ := strings.Cut(slug, "-")
	for _, variant := range variants {
		if slug == variant {
			return true
		}
		head, _, _ := strings.Cut(variant, "-")
		if slugHead != "" && slugHead == head {
			return true
		}
	}
	return false
}
