package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAliasRepository_SetNormalizesKeys(t *testing.T) {
	t.Parallel()

	repo, err := NewAliasRepository(filepath.Join(t.TempDir(), "aliases.json"))
	if err != nil {
		t.Fatalf("NewAliasRepository error: %v", err)
	}
	ctx := context.Background()

	if err := repo.Set(ctx, "  Missouri State ", "missouri-st"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, found, err := repo.Get(ctx, "missouri state")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !found || got != "missouri-st" {
		t.Fatalf("lookup after set: found=%v id=%q", found, got)
	}

	mapping, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if _, ok := mapping["missouri-state"]; !ok {
		t.Fatalf("expected lowercase-hyphen key, got %+v", mapping)
	}
}

func TestAliasRepository_CommentKeyHiddenAndProtected(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "aliases.json")
	repo, err := NewAliasRepository(path)
	if err != nil {
		t.Fatalf("NewAliasRepository error: %v", err)
	}
	ctx := context.Background()

	if err := repo.Set(ctx, "Zona", "arizona"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read alias file: %v", err)
	}
	if !strings.Contains(string(raw), `"_comment"`) {
		t.Fatalf("comment key not written:\n%s", raw)
	}

	mapping, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if _, ok := mapping["_comment"]; ok {
		t.Fatal("comment key leaked into iteration")
	}
	if len(mapping) != 1 {
		t.Fatalf("expected 1 alias, got %+v", mapping)
	}

	if err := repo.Set(ctx, "_comment", "x"); err == nil {
		t.Fatal("expected rejection of the reserved key")
	}
}

func TestAliasRepository_RemoveAndLastWriteWins(t *testing.T) {
	t.Parallel()

	repo, err := NewAliasRepository(filepath.Join(t.TempDir(), "aliases.json"))
	if err != nil {
		t.Fatalf("NewAliasRepository error: %v", err)
	}
	ctx := context.Background()

	if err := repo.Set(ctx, "Zona", "arizona"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := repo.Set(ctx, "Zona", "arizona-st"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, found, err := repo.Get(ctx, "Zona")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !found || got != "arizona-st" {
		t.Fatalf("last write did not win: found=%v id=%q", found, got)
	}

	if err := repo.Remove(ctx, "Zona"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, found, _ := repo.Get(ctx, "Zona"); found {
		t.Fatal("alias still present after removal")
	}
}

func TestAliasRepository_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	repo, err := NewAliasRepository(filepath.Join(t.TempDir(), "aliases.json"))
	if err != nil {
		t.Fatalf("NewAliasRepository error: %v", err)
	}

	mapping, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(mapping) != 0 {
		t.Fatalf("expected empty mapping, got %+v", mapping)
	}
}
