package file

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	sonic "github.com/bytedance/sonic"

	"github.com/mosescsmith/cbb/internal/domain/alias"
	"github.com/mosescsmith/cbb/internal/platform/namematch"
)

// commentKey is the one reserved documentation key in the alias file,
// skipped during iteration and protected from deletion.
const commentKey = "_comment"

const defaultComment = "Maps normalized team names to canonical cache ids. Edit by hand or through the alias endpoints."

// AliasRepository persists the whole alias mapping as one JSON file,
// rewritten wholesale on every change. Keys are normalized on write;
// last write wins.
type AliasRepository struct {
	mu   sync.Mutex
	path string
}

func NewAliasRepository(path string) (*AliasRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("alias file path is required")
	}
	return &AliasRepository{path: path}, nil
}

func (r *AliasRepository) Get(_ context.Context, rawName string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mapping, err := r.load()
	if err != nil {
		return "", false, err
	}
	id, ok := mapping[namematch.NormalizeKey(rawName)]
	return id, ok, nil
}

func (r *AliasRepository) Set(_ context.Context, rawName, teamID string) error {
	key := namematch.NormalizeKey(rawName)
	if key == "" || key == commentKey {
		return fmt.Errorf("invalid alias key %q", rawName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	mapping, err := r.load()
	if err != nil {
		return err
	}
	mapping[key] = strings.TrimSpace(teamID)
	return r.store(mapping)
}

func (r *AliasRepository) Remove(_ context.Context, rawName string) error {
	key := namematch.NormalizeKey(rawName)
	if key == "" || key == commentKey {
		return fmt.Errorf("invalid alias key %q", rawName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	mapping, err := r.load()
	if err != nil {
		return err
	}
	delete(mapping, key)
	return r.store(mapping)
}

func (r *AliasRepository) All(_ context.Context) (alias.Mapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// load returns the mapping without the reserved comment key. A missing
// file is an empty mapping.
func (r *AliasRepository) load() (alias.Mapping, error) {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return alias.Mapping{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	var stored map[string]string
	if err := sonic.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode alias file: %w", err)
	}

	mapping := make(alias.Mapping, len(stored))
	for key, value := range stored {
		if key == commentKey {
			continue
		}
		mapping[key] = value
	}
	return mapping, nil
}

func (r *AliasRepository) store(mapping alias.Mapping) error {
	stored := make(map[string]string, len(mapping)+1)
	stored[commentKey] = defaultComment
	for key, value := range mapping {
		stored[key] = value
	}

	raw, err := sonic.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encode alias file: %w", err)
	}
	return atomicWrite(r.path, raw)
}
