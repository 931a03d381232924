package schedule

import "time"

// Matchup is one game on a day's scoreboard. Slugs are the feed's
// lowercase hyphenated team identifiers.
type Matchup struct {
	GameID   string
	Date     time.Time
	HomeSlug string
	AwaySlug string
}

// TeamLine is one team's side of a game detail. Periods holds the
// per-period points in play order; halves are indexes 0 and 1.
type TeamLine struct {
	TeamID  string
	Slug    string
	Name    string
	IsHome  bool
	Periods []int
}

// GameDetail is the full per-game record behind a scoreboard entry.
type GameDetail struct {
	GameID string
	Date   time.Time
	Teams  []TeamLine
}
