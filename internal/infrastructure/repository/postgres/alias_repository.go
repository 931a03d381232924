package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mosescsmith/cbb/internal/domain/alias"
	"github.com/mosescsmith/cbb/internal/platform/namematch"
	qb "github.com/mosescsmith/cbb/internal/platform/querybuilder"
)

type aliasTableModel struct {
	AliasKey string `db:"alias_key"`
	TeamID   string `db:"team_id"`
}

// AliasRepository stores alias mappings one row per key. Last write
// wins via upsert, matching the file backend.
type AliasRepository struct {
	db *sqlx.DB
}

func NewAliasRepository(db *sqlx.DB) *AliasRepository {
	return &AliasRepository{db: db}
}

func (r *AliasRepository) Get(ctx context.Context, rawName string) (string, bool, error) {
	query, args, err := qb.Select("alias_key", "team_id").
		From("team_aliases").
		Where(qb.Eq("alias_key", namematch.NormalizeKey(rawName))).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build get alias query: %w", err)
	}

	var row aliasTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get alias: %w", err)
	}
	return row.TeamID, true, nil
}

func (r *AliasRepository) Set(ctx context.Context, rawName, teamID string) error {
	key := namematch.NormalizeKey(rawName)
	if key == "" {
		return fmt.Errorf("invalid alias key %q", rawName)
	}

	query, args, err := qb.InsertModel("team_aliases", aliasTableModel{
		AliasKey: key,
		TeamID:   teamID,
	}, "ON CONFLICT (alias_key) DO UPDATE SET team_id = EXCLUDED.team_id")
	if err != nil {
		return fmt.Errorf("build set alias query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set alias: %w", err)
	}
	return nil
}

func (r *AliasRepository) Remove(ctx context.Context, rawName string) error {
	query, args, err := qb.DeleteFrom("team_aliases").
		Where(qb.Eq("alias_key", namematch.NormalizeKey(rawName))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove alias query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove alias: %w", err)
	}
	return nil
}

func (r *AliasRepository) All(ctx context.Context) (alias.Mapping, error) {
	query, args, err := qb.Select("alias_key", "team_id").
		From("team_aliases").
		OrderBy("alias_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list aliases query: %w", err)
	}

	var rows []aliasTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}

	mapping := make(alias.Mapping, len(rows))
	for _, row := range rows {
		mapping[row.AliasKey] = row.TeamID
	}
	return mapping, nil
}
