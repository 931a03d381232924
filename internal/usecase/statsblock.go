package usecase

import (
	"fmt"

	"github.com/valyala/bytebufferpool"

	"github.com/mosescsmith/cbb/internal/domain/teamstats"
)

// FormatStatsBlock renders the textual matchup summary handed to the
// text-completion service. The core only formats the block; it never
// calls the completion service with it directly.
func FormatStatsBlock(home, away teamstats.TeamStatsCache) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeTeamSection(buf, "HOME", home)
	_, _ = buf.WriteString("\n")
	writeTeamSection(buf, "AWAY", away)

	return buf.String()
}

func writeTeamSection(buf *bytebufferpool.ByteBuffer, label string, cache teamstats.TeamStatsCache) {
	_, _ = fmt.Fprintf(buf, "%s: %s\n", label, cache.TeamName)
	_, _ = fmt.Fprintf(buf, "Games on file: %d\n", len(cache.Games))
	if len(cache.Games) == 0 {
		_, _ = buf.WriteString("No historical games available.\n")
		return
	}

	writeSplit(buf, "Season", cache.SeasonAverages)
	writeSplit(buf, "Last 5", cache.Last5Averages)

	weighted := teamstats.WeightedAverages(cache.Games)
	writeSplit(buf, "Opponent-weighted", weighted)

	if sos := cache.StrengthOfSchedule; sos != nil {
		_, _ = fmt.Fprintf(buf, "Strength of schedule: %.1f avg, %.1f recency-weighted (%d rated games)\n",
			sos.Average, sos.WeightedAverage, sos.GamesWithRatings)
	}
}

func writeSplit(buf *bytebufferpool.ByteBuffer, label string, split teamstats.SplitAverages) {
	_, _ = fmt.Fprintf(buf, "%s 1H: %.1f scored / %.1f allowed | 2H: %.1f scored / %.1f allowed\n",
		label,
		split.FirstHalf.ScoredPerGame, split.FirstHalf.AllowedPerGame,
		split.SecondHalf.ScoredPerGame, split.SecondHalf.AllowedPerGame,
	)
}
