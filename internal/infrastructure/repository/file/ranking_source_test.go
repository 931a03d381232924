package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mosescsmith/cbb/internal/domain/ranking"
)

const rankingFixture = `rank,team,season,last-3,last-1,home,away,prior-season
1,Duke,41.2,43.0,44.0,42.1,40.3,39.8
2,Arizona,39.5,--,38.0,40.2,--,37.7
3,Missouri St.,36.1,35.0,--,36.8,35.4,--
`

func writeRankingFile(t *testing.T, dir string, half ranking.Half, metric ranking.Metric, content string) {
	t.Helper()
	name := string(half) + "_" + string(metric) + ".csv"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write ranking fixture: %v", err)
	}
}

func TestRankingSource_LoadParsesRowsAndMissingTokens(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRankingFile(t, dir, ranking.FirstHalf, ranking.PointsPerGame, rankingFixture)

	source, err := NewRankingSource(dir)
	if err != nil {
		t.Fatalf("NewRankingSource error: %v", err)
	}

	table, err := source.Load(context.Background(), ranking.FirstHalf, ranking.PointsPerGame)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("parsed %d rows, want 3", len(table))
	}

	duke, ok := table["duke"]
	if !ok {
		t.Fatalf("duke not keyed by normalized name: %+v", table)
	}
	if duke.Rank != 1 || duke.Season == nil || *duke.Season != 41.2 {
		t.Fatalf("unexpected duke row: %+v", duke)
	}

	arizona := table["arizona"]
	if arizona.Last3 != nil || arizona.Away != nil {
		t.Fatalf("no-data tokens not mapped to nil: %+v", arizona)
	}
	if arizona.Last1 == nil || *arizona.Last1 != 38.0 {
		t.Fatalf("unexpected arizona row: %+v", arizona)
	}

	if _, ok := table["missourist"]; !ok {
		t.Fatalf("missouri st. not keyed by normalized name: %+v", table)
	}
}

func TestRankingSource_LoadMissingFile(t *testing.T) {
	t.Parallel()

	source, err := NewRankingSource(t.TempDir())
	if err != nil {
		t.Fatalf("NewRankingSource error: %v", err)
	}

	if _, err := source.Load(context.Background(), ranking.SecondHalf, ranking.Margin); err == nil {
		t.Fatal("expected error for missing ranking file")
	}
}

func TestRankingSource_LoadRejectsShortRows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRankingFile(t, dir, ranking.FirstHalf, ranking.Margin, "rank,team\n1,Duke\n")

	source, err := NewRankingSource(dir)
	if err != nil {
		t.Fatalf("NewRankingSource error: %v", err)
	}

	if _, err := source.Load(context.Background(), ranking.FirstHalf, ranking.Margin); err == nil {
		t.Fatal("expected error for malformed row")
	}
}
