package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/mosescsmith/cbb/internal/platform/logging"
)

// ScorePrediction is the structured answer from the completion
// service.
type ScorePrediction struct {
	HomeFirstHalf  int    `json:"homeFirstHalf"`
	AwayFirstHalf  int    `json:"awayFirstHalf"`
	HomeSecondHalf int    `json:"homeSecondHalf"`
	AwaySecondHalf int    `json:"awaySecondHalf"`
	Commentary     string `json:"commentary,omitempty"`
}

// CompletionClient is the external text-completion collaborator.
type CompletionClient interface {
	PredictScore(ctx context.Context, statsBlock, contextText string) (ScorePrediction, error)
}

// TeamStatsProvider is the slice of TeamStatsService the prediction
// and preload paths need.
type TeamStatsProvider interface {
	GetTeamStats(ctx context.Context, rawID, rawName string) (TeamStatsResult, error)
}

// TeamRef identifies one side of a matchup as the caller knows it.
type TeamRef struct {
	ID   string
	Name string
}

// MatchupPrediction pairs the completion's answer with the stats both
// sides were predicted from.
type MatchupPrediction struct {
	Prediction ScorePrediction
	Home       TeamStatsResult
	Away       TeamStatsResult
	StatsBlock string
}

// PredictionService assembles the stats block for a matchup and asks
// the completion service for a score.
type PredictionService struct {
	stats      TeamStatsProvider
	completion CompletionClient
	logger     *logging.Logger
}

func NewPredictionService(stats TeamStatsProvider, completion CompletionClient, logger *logging.Logger) *PredictionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &PredictionService{stats: stats, completion: completion, logger: logger}
}

// PredictMatchup looks up both teams concurrently, formats the stats
// block, and forwards it with the caller's context text. Unmatched
// teams come back with suggestions instead of a prediction.
func (s *PredictionService) PredictMatchup(ctx context.Context, home, away TeamRef, contextText string) (MatchupPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.PredictMatchup")
	defer span.End()

	if strings.TrimSpace(home.ID)+strings.TrimSpace(home.Name) == "" ||
		strings.TrimSpace(away.ID)+strings.TrimSpace(away.Name) == "" {
		return MatchupPrediction{}, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}

	var homeRes, awayRes TeamStatsResult
	var homeErr, awayErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		homeRes, homeErr = s.stats.GetTeamStats(ctx, home.ID, home.Name)
	})
	wg.Go(func() {
		awayRes, awayErr = s.stats.GetTeamStats(ctx, away.ID, away.Name)
	})
	wg.Wait()

	if homeErr != nil {
		return MatchupPrediction{}, fmt.Errorf("home team stats: %w", homeErr)
	}
	if awayErr != nil {
		return MatchupPrediction{}, fmt.Errorf("away team stats: %w", awayErr)
	}

	result := MatchupPrediction{Home: homeRes, Away: awayRes}
	if !homeRes.Matched || !awayRes.Matched {
		return result, nil
	}

	result.StatsBlock = FormatStatsBlock(homeRes.Cache, awayRes.Cache)

	prediction, err := s.completion.PredictScore(ctx, result.StatsBlock, contextText)
	if err != nil {
		return MatchupPrediction{}, fmt.Errorf("%w: completion call failed: %v", ErrDependencyUnavailable, err)
	}
	result.Prediction = prediction
	return result, nil
}
