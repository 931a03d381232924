package memory

import (
	"context"
	"sync"

	"github.com/mosescsmith/cbb/internal/domain/alias"
	"github.com/mosescsmith/cbb/internal/platform/namematch"
)

type AliasRepository struct {
	mu    sync.RWMutex
	items alias.Mapping
}

func NewAliasRepository(seed alias.Mapping) *AliasRepository {
	items := make(alias.Mapping, len(seed))
	for key, teamID := range seed {
		items[namematch.NormalizeKey(key)] = teamID
	}
	return &AliasRepository{items: items}
}

func (r *AliasRepository) Get(_ context.Context, rawName string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teamID, ok := r.items[namematch.NormalizeKey(rawName)]
	return teamID, ok, nil
}

func (r *AliasRepository) Set(_ context.Context, rawName, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[namematch.NormalizeKey(rawName)] = teamID
	return nil
}

func (r *AliasRepository) Remove(_ context.Context, rawName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, namematch.NormalizeKey(rawName))
	return nil
}

func (r *AliasRepository) All(_ context.Context) (alias.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(alias.Mapping, len(r.items))
	for key, teamID := range r.items {
		out[key] = teamID
	}
	return out, nil
}
