package teamstats

import (
	"math"
	"sort"
	"time"
)

// recencyDecay is the exponent applied per rated game when weighting
// strength-of-schedule toward recent opponents.
const recencyDecay = 0.15

// lastNGames is how many most-recent games feed the short-form averages.
const lastNGames = 5

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Averages computes the plain arithmetic per-game mean for each half.
// Empty input yields gamesPlayed=0 with zero scored/allowed.
func Averages(games []GameStatRecord) SplitAverages {
	if len(games) == 0 {
		return SplitAverages{}
	}

	var firstScored, firstAllowed, secondScored, secondAllowed int
	for _, g := range games {
		firstScored += g.FirstHalf.Scored
		firstAllowed += g.FirstHalf.Allowed
		secondScored += g.SecondHalf.Scored
		secondAllowed += g.SecondHalf.Allowed
	}

	n := float64(len(games))
	return SplitAverages{
		FirstHalf: HalfAverages{
			GamesPlayed:    len(games),
			ScoredPerGame:  round1(float64(firstScored) / n),
			AllowedPerGame: round1(float64(firstAllowed) / n),
		},
		SecondHalf: HalfAverages{
			GamesPlayed:    len(games),
			ScoredPerGame:  round1(float64(secondScored) / n),
			AllowedPerGame: round1(float64(secondAllowed) / n),
		},
	}
}

// WeightedAverages weights each rated game by its opponent rating
// relative to the mean rating of all rated games; unrated games keep
// weight 1. With no rated games it equals Averages.
func WeightedAverages(games []GameStatRecord) SplitAverages {
	if len(games) == 0 {
		return SplitAverages{}
	}

	var ratingSum float64
	var rated int
	for _, g := range games {
		if g.OpponentRating != nil {
			ratingSum += *g.OpponentRating
			rated++
		}
	}
	if rated == 0 {
		return Averages(games)
	}
	meanRating := ratingSum / float64(rated)

	var totalWeight float64
	var firstScored, firstAllowed, secondScored, secondAllowed float64
	for _, g := range games {
		weight := 1.0
		if g.OpponentRating != nil && meanRating != 0 {
			weight = *g.OpponentRating / meanRating
		}
		totalWeight += weight
		firstScored += float64(g.FirstHalf.Scored) * weight
		firstAllowed += float64(g.FirstHalf.Allowed) * weight
		secondScored += float64(g.SecondHalf.Scored) * weight
		secondAllowed += float64(g.SecondHalf.Allowed) * weight
	}

	return SplitAverages{
		FirstHalf: HalfAverages{
			GamesPlayed:    len(games),
			ScoredPerGame:  round1(firstScored / totalWeight),
			AllowedPerGame: round1(firstAllowed / totalWeight),
		},
		SecondHalf: HalfAverages{
			GamesPlayed:    len(games),
			ScoredPerGame:  round1(secondScored / totalWeight),
			AllowedPerGame: round1(secondAllowed / totalWeight),
		},
	}
}

// ComputeStrengthOfSchedule summarizes opponent ratings across rated
// games. Games must already be date-descending: the weighted mean
// decays by exp(-recencyDecay * i) where i counts rated games from the
// most recent. Returns nil when no game carries a rating.
func ComputeStrengthOfSchedule(games []GameStatRecord) *StrengthOfSchedule {
	var ratingSum, weightedSum, weightSum float64
	var rated int
	for _, g := range games {
		if g.OpponentRating == nil {
			continue
		}
		weight := math.Exp(-recencyDecay * float64(rated))
		ratingSum += *g.OpponentRating
		weightedSum += *g.OpponentRating * weight
		weightSum += weight
		rated++
	}
	if rated == 0 {
		return nil
	}
	return &StrengthOfSchedule{
		Average:          round1(ratingSum / float64(rated)),
		WeightedAverage:  round1(weightedSum / weightSum),
		GamesWithRatings: rated,
	}
}

// MergeGames unions two game lists, deduplicating by GameID. Existing
// records win: they are immutable, so an overlapping fetch carries no
// new information.
func MergeGames(existing, incoming []GameStatRecord) []GameStatRecord {
	merged := make([]GameStatRecord, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, g := range existing {
		if _, ok := seen[g.GameID]; ok {
			continue
		}
		seen[g.GameID] = struct{}{}
		merged = append(merged, g)
	}
	for _, g := range incoming {
		if _, ok := seen[g.GameID]; ok {
			continue
		}
		seen[g.GameID] = struct{}{}
		merged = append(merged, g)
	}
	return merged
}

// SortByDateDesc orders games most-recent first, in place.
func SortByDateDesc(games []GameStatRecord) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Date.After(games[j].Date)
	})
}

// LastN returns up to n games from a date-descending list.
func LastN(games []GameStatRecord, n int) []GameStatRecord {
	if len(games) <= n {
		return games
	}
	return games[:n]
}

// Build assembles a cache record wholesale from a set of games: dedup,
// sort date-descending, and recompute every derived field.
func Build(teamID, teamName string, games []GameStatRecord, now time.Time) TeamStatsCache {
	games = MergeGames(nil, games)
	SortByDateDesc(games)
	return TeamStatsCache{
		TeamID:             teamID,
		TeamName:           teamName,
		LastUpdated:        now,
		Games:              games,
		SeasonAverages:     Averages(games),
		Last5Averages:      Averages(LastN(games, lastNGames)),
		StrengthOfSchedule: ComputeStrengthOfSchedule(games),
	}
}
