package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/mosescsmith/cbb/internal/platform/namematch"
)

// RatingRepository serves the static ratings table from one JSON file
// mapping team slug to primary rating. The table ships with the
// deployment; it is loaded once and never written.
type RatingRepository struct {
	byID map[string]float64
}

func NewRatingRepository(path string) (*RatingRepository, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &RatingRepository{byID: map[string]float64{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ratings file: %w", err)
	}

	var stored map[string]float64
	if err := sonic.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode ratings file: %w", err)
	}

	byID := make(map[string]float64, len(stored))
	for key, value := range stored {
		byID[namematch.NormalizeKey(key)] = value
	}
	return &RatingRepository{byID: byID}, nil
}

func (r *RatingRepository) Get(_ context.Context, teamID string) (float64, bool, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return 0, false, nil
	}
	value, ok := r.byID[namematch.NormalizeKey(teamID)]
	return value, ok, nil
}
