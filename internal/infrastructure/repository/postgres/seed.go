package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mosescsmith/cbb/internal/infrastructure/repository/memory"
	"github.com/mosescsmith/cbb/internal/platform/namematch"
)

// BootstrapSeed loads the curated alias set into an empty database.
// Existing rows win; the seed never overwrites operator edits.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM team_aliases`); err != nil {
		return fmt.Errorf("count aliases for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for rawName, teamID := range memory.SeedAliases() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO team_aliases (alias_key, team_id)
VALUES (:alias_key, :team_id)
ON CONFLICT (alias_key) DO NOTHING`, map[string]any{
			"alias_key": namematch.NormalizeKey(rawName),
			"team_id":   teamID,
		})
		if err != nil {
			return fmt.Errorf("bind seed alias %s query: %w", rawName, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed alias %s: %w", rawName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
