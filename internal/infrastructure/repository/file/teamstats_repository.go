package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/mosescsmith/cbb/internal/domain/teamstats"
)

// TeamStatsRepository keeps one JSON file per team under dir. Every
// update rewrites the whole record through a temp file and rename, so
// a crash mid-write never leaves a truncated record behind.
type TeamStatsRepository struct {
	dir string
}

func NewTeamStatsRepository(dir string) (*TeamStatsRepository, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("team stats directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create team stats directory: %w", err)
	}
	return &TeamStatsRepository{dir: dir}, nil
}

func (r *TeamStatsRepository) Get(_ context.Context, teamID string) (teamstats.TeamStatsCache, bool, error) {
	path, err := r.pathFor(teamID)
	if err != nil {
		return teamstats.TeamStatsCache{}, false, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return teamstats.TeamStatsCache{}, false, nil
	}
	if err != nil {
		return teamstats.TeamStatsCache{}, false, fmt.Errorf("read team cache %s: %w", teamID, err)
	}

	var cache teamstats.TeamStatsCache
	if err := sonic.Unmarshal(raw, &cache); err != nil {
		return teamstats.TeamStatsCache{}, false, fmt.Errorf("decode team cache %s: %w", teamID, err)
	}
	return cache, true, nil
}

func (r *TeamStatsRepository) Put(_ context.Context, cache teamstats.TeamStatsCache) error {
	path, err := r.pathFor(cache.TeamID)
	if err != nil {
		return err
	}

	raw, err := sonic.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("encode team cache %s: %w", cache.TeamID, err)
	}
	return atomicWrite(path, raw)
}

func (r *TeamStatsRepository) ListRefs(_ context.Context) ([]teamstats.CachedTeamRef, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list team caches: %w", err)
	}

	refs := make([]teamstats.CachedTeamRef, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read team cache %s: %w", entry.Name(), err)
		}
		var cache teamstats.TeamStatsCache
		if err := sonic.Unmarshal(raw, &cache); err != nil {
			return nil, fmt.Errorf("decode team cache %s: %w", entry.Name(), err)
		}
		refs = append(refs, teamstats.CachedTeamRef{
			TeamID:    cache.TeamID,
			TeamName:  cache.TeamName,
			GameCount: len(cache.Games),
		})
	}
	return refs, nil
}

func (r *TeamStatsRepository) pathFor(teamID string) (string, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return "", fmt.Errorf("team id is required")
	}
	// Team ids are feed slugs; reject anything that could escape dir.
	if strings.ContainsAny(teamID, "/\\") || teamID == "." || teamID == ".." {
		return "", fmt.Errorf("invalid team id %q", teamID)
	}
	return filepath.Join(r.dir, teamID+".json"), nil
}

func atomicWrite(path string, raw []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
