package teamstats

import "time"

// HalfLine is the scored/allowed pair for one half of one game.
type HalfLine struct {
	Scored  int `json:"scored"`
	Allowed int `json:"allowed"`
}

// GameStatRecord is one completed game from the cached team's
// perspective. Immutable once created; GameID is unique within a
// team's cache.
type GameStatRecord struct {
	GameID         string    `json:"gameId"`
	Date           time.Time `json:"date"`
	OpponentID     string    `json:"opponentId"`
	OpponentName   string    `json:"opponentName,omitempty"`
	IsHome         bool      `json:"isHome"`
	OpponentRating *float64  `json:"opponentRating,omitempty"`
	FirstHalf      HalfLine  `json:"firstHalf"`
	SecondHalf     HalfLine  `json:"secondHalf"`
}

// HalfAverages carries per-game scoring averages for one half,
// rounded to one decimal.
type HalfAverages struct {
	GamesPlayed    int     `json:"gamesPlayed"`
	ScoredPerGame  float64 `json:"scoredPerGame"`
	AllowedPerGame float64 `json:"allowedPerGame"`
}

// SplitAverages pairs first- and second-half averages.
type SplitAverages struct {
	FirstHalf  HalfAverages `json:"firstHalf"`
	SecondHalf HalfAverages `json:"secondHalf"`
}

// StrengthOfSchedule summarizes opponent quality across the games that
// carry a static rating.
type StrengthOfSchedule struct {
	Average          float64 `json:"average"`
	WeightedAverage  float64 `json:"weightedAverage"`
	GamesWithRatings int     `json:"gamesWithRatings"`
}

// TeamStatsCache is the persisted per-team record. Games are kept
// date-descending and unique by GameID; derived fields are rebuilt
// wholesale on every refresh, never patched in place.
type TeamStatsCache struct {
	TeamID             string              `json:"teamId"`
	TeamName           string              `json:"teamName"`
	LastUpdated        time.Time           `json:"lastUpdated"`
	Games              []GameStatRecord    `json:"games"`
	SeasonAverages     SplitAverages       `json:"seasonAverages"`
	Last5Averages      SplitAverages       `json:"last5Averages"`
	StrengthOfSchedule *StrengthOfSchedule `json:"strengthOfSchedule,omitempty"`
}
