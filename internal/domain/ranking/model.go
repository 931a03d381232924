package ranking

// Half identifies which half of the game a ranking table covers.
type Half string

const (
	FirstHalf  Half = "1h"
	SecondHalf Half = "2h"
)

// Metric identifies which stat category a ranking table covers.
type Metric string

const (
	PointsPerGame Metric = "ppg"
	PointsAllowed Metric = "pa"
	Margin        Metric = "margin"
)

// Halves and Metrics enumerate the six (half, metric) table variants.
var (
	Halves  = []Half{FirstHalf, SecondHalf}
	Metrics = []Metric{PointsPerGame, PointsAllowed, Margin}
)

// Row is one team's line from a ranking table. The numeric splits are
// nil where the source file carries its no-data token.
type Row struct {
	Rank        int      `json:"rank"`
	Team        string   `json:"team"`
	Season      *float64 `json:"season,omitempty"`
	Last3       *float64 `json:"last3,omitempty"`
	Last1       *float64 `json:"last1,omitempty"`
	Home        *float64 `json:"home,omitempty"`
	Away        *float64 `json:"away,omitempty"`
	PriorSeason *float64 `json:"priorSeason,omitempty"`
}

// Table maps normalized team name to its row for one (half, metric).
type Table map[string]Row
