package cache

import (
	"context"

	"github.com/mosescsmith/cbb/internal/domain/alias"
	"github.com/mosescsmith/cbb/internal/domain/rating"
	basecache "github.com/mosescsmith/cbb/internal/platform/cache"
	"github.com/mosescsmith/cbb/internal/platform/namematch"
)

// RatingRepository memoizes rating lookups. The day-walk asks for the
// same opponents over and over; the static table never changes inside
// a process lifetime.
type RatingRepository struct {
	next  rating.Repository
	cache *basecache.Store
}

func NewRatingRepository(next rating.Repository, cache *basecache.Store) *RatingRepository {
	return &RatingRepository{next: next, cache: cache}
}

func (r *RatingRepository) Get(ctx context.Context, teamID string) (float64, bool, error) {
	key := "rating:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		value, found, err := r.next.Get(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedRating{value: value, found: found}, nil
	})
	if err != nil {
		return 0, false, err
	}

	cached, _ := v.(cachedRating)
	return cached.value, cached.found, nil
}

type cachedRating struct {
	value float64
	found bool
}

// AliasRepository caches alias reads and invalidates on write, so the
// resolver's per-variant lookups stay off disk.
type AliasRepository struct {
	next  alias.Repository
	cache *basecache.Store
}

func NewAliasRepository(next alias.Repository, cache *basecache.Store) *AliasRepository {
	return &AliasRepository{next: next, cache: cache}
}

func (r *AliasRepository) Get(ctx context.Context, rawName string) (string, bool, error) {
	key := "alias:key:" + namematch.NormalizeKey(rawName)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		teamID, found, err := r.next.Get(ctx, rawName)
		if err != nil {
			return nil, err
		}
		return cachedAlias{teamID: teamID, found: found}, nil
	})
	if err != nil {
		return "", false, err
	}

	cached, _ := v.(cachedAlias)
	return cached.teamID, cached.found, nil
}

func (r *AliasRepository) Set(ctx context.Context, rawName, teamID string) error {
	if err := r.next.Set(ctx, rawName, teamID); err != nil {
		return err
	}
	r.invalidate(ctx, rawName)
	return nil
}

func (r *AliasRepository) Remove(ctx context.Context, rawName string) error {
	if err := r.next.Remove(ctx, rawName); err != nil {
		return err
	}
	r.invalidate(ctx, rawName)
	return nil
}

func (r *AliasRepository) All(ctx context.Context) (alias.Mapping, error) {
	v, err := r.cache.GetOrLoad(ctx, "alias:all", func(ctx context.Context) (any, error) {
		mapping, err := r.next.All(ctx)
		if err != nil {
			return nil, err
		}
		return mapping, nil
	})
	if err != nil {
		return nil, err
	}

	mapping, _ := v.(alias.Mapping)
	out := make(alias.Mapping, len(mapping))
	for k, val := range mapping {
		out[k] = val
	}
	return out, nil
}

// invalidate keys on the normalized form, matching the write path, so
// any raw spelling of the same alias hits the same entry.
func (r *AliasRepository) invalidate(ctx context.Context, rawName string) {
	r.cache.Delete(ctx, "alias:key:"+namematch.NormalizeKey(rawName))
	r.cache.Delete(ctx, "alias:all")
}

type cachedAlias struct {
	teamID string
	found  bool
}
