package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mosescsmith/cbb/internal/domain/ranking"
	"github.com/mosescsmith/cbb/internal/platform/namematch"
)

// noDataToken marks a missing value in the ranking files.
const noDataToken = "--"

// RankingSource parses the six delimited ranking files, one per
// (half, metric), named like 1h_ppg.csv. Columns: rank, team, season,
// last-3, last-1, home, away, prior-season.
type RankingSource struct {
	dir string
}

func NewRankingSource(dir string) (*RankingSource, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("ranking directory is required")
	}
	return &RankingSource{dir: dir}, nil
}

func (s *RankingSource) Load(_ context.Context, half ranking.Half, metric ranking.Metric) (ranking.Table, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.csv", half, metric))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ranking file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ranking file %s: %w", path, err)
	}

	table := make(ranking.Table, len(records))
	for i, record := range records {
		if i == 0 && isHeaderRow(record) {
			continue
		}
		if len(record) < 8 {
			return nil, fmt.Errorf("ranking file %s row %d: expected 8 columns, got %d", path, i+1, len(record))
		}

		rank, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("ranking file %s row %d: bad rank %q", path, i+1, record[0])
		}
		team := strings.TrimSpace(record[1])
		if team == "" {
			continue
		}

		row := ranking.Row{
			Rank:        rank,
			Team:        team,
			Season:      parseSplit(record[2]),
			Last3:       parseSplit(record[3]),
			Last1:       parseSplit(record[4]),
			Home:        parseSplit(record[5]),
			Away:        parseSplit(record[6]),
			PriorSeason: parseSplit(record[7]),
		}
		table[namematch.Normalize(team)] = row
	}
	return table, nil
}

func isHeaderRow(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(record[0]))
	return err != nil
}

// parseSplit maps the no-data token (or garbage) to nil.
func parseSplit(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == noDataToken {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
