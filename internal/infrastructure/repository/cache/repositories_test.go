package cache

import (
	"context"
	"testing"
	"time"

	"github.com/mosescsmith/cbb/internal/domain/alias"
	"github.com/mosescsmith/cbb/internal/infrastructure/repository/memory"
	basecache "github.com/mosescsmith/cbb/internal/platform/cache"
)

type countingRatingRepository struct {
	byID  map[string]float64
	calls int
}

func (r *countingRatingRepository) Get(_ context.Context, teamID string) (float64, bool, error) {
	r.calls++
	value, ok := r.byID[teamID]
	return value, ok, nil
}

func TestRatingRepository_MemoizesLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingRatingRepository{byID: map[string]float64{"duke": 18.5}}
	repo := NewRatingRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		value, found, err := repo.Get(ctx, "duke")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found || value != 18.5 {
			t.Fatalf("unexpected rating: %v found=%t", value, found)
		}
	}

	if next.calls != 1 {
		t.Fatalf("expected 1 backing call, got %d", next.calls)
	}
}

func TestAliasRepository_WriteInvalidatesCachedReads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAliasRepository(
		memory.NewAliasRepository(alias.Mapping{"zona": "arizona"}),
		basecache.NewStore(time.Minute),
	)

	teamID, found, err := repo.Get(ctx, "zona")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || teamID != "arizona" {
		t.Fatalf("unexpected alias target: %q found=%t", teamID, found)
	}

	if err := repo.Set(ctx, "zona", "arizona-st"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	teamID, found, err = repo.Get(ctx, "zona")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || teamID != "arizona-st" {
		t.Fatalf("expected updated alias past the cache, got %q found=%t", teamID, found)
	}

	if err := repo.Remove(ctx, "zona"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, found, _ = repo.Get(ctx, "zona"); found {
		t.Fatal("expected removed alias to miss")
	}
}

func TestAliasRepository_RemoveInvalidatesAllListing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAliasRepository(
		memory.NewAliasRepository(alias.Mapping{"zona": "arizona", "uconn": "connecticut"}),
		basecache.NewStore(time.Minute),
	)

	mapping, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mapping) != 2 {
		t.Fatalf("expected 2 aliases, got %d", len(mapping))
	}

	if err := repo.Remove(ctx, "uconn"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mapping, err = repo.All(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mapping) != 1 {
		t.Fatalf("expected stale listing to be invalidated, got %d aliases", len(mapping))
	}
	if _, ok := mapping["uconn"]; ok {
		t.Fatal("expected removed alias absent from listing")
	}
}
