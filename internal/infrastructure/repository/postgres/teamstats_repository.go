package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mosescsmith/cbb/internal/domain/teamstats"
	qb "github.com/mosescsmith/cbb/internal/platform/querybuilder"
)

// TeamStatsRepository stores the per-team cache in two tables: one row
// per team plus one row per game. A Put rewrites the team's games
// wholesale inside a transaction, mirroring the file backend's
// whole-record semantics.
type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) Get(ctx context.Context, teamID string) (teamstats.TeamStatsCache, bool, error) {
	query, args, err := qb.Select("team_id", "team_name", "last_updated").
		From("team_stats_caches").
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return teamstats.TeamStatsCache{}, false, fmt.Errorf("build get team cache query: %w", err)
	}

	var row teamCacheTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return teamstats.TeamStatsCache{}, false, nil
		}
		return teamstats.TeamStatsCache{}, false, fmt.Errorf("get team cache: %w", err)
	}

	games, err := r.listGames(ctx, teamID)
	if err != nil {
		return teamstats.TeamStatsCache{}, false, err
	}

	// Derived fields are recomputed on load; only the raw games and
	// the update timestamp are authoritative in storage.
	cache := teamstats.Build(row.TeamID, row.TeamName, games, row.LastUpdated)
	return cache, true, nil
}

func (r *TeamStatsRepository) Put(ctx context.Context, cache teamstats.TeamStatsCache) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx put team cache: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	upsertQuery, upsertArgs, err := qb.InsertModel("team_stats_caches", teamCacheTableModel{
		TeamID:      cache.TeamID,
		TeamName:    cache.TeamName,
		LastUpdated: cache.LastUpdated,
	}, "ON CONFLICT (team_id) DO UPDATE SET team_name = EXCLUDED.team_name, last_updated = EXCLUDED.last_updated")
	if err != nil {
		return fmt.Errorf("build upsert team cache query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		return fmt.Errorf("upsert team cache: %w", err)
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("team_stat_games").
		Where(qb.Eq("team_id", cache.TeamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear team games query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("clear team games: %w", err)
	}

	for _, game := range cache.Games {
		insertQuery, insertArgs, err := qb.InsertModel("team_stat_games", gameToInsertModel(cache.TeamID, game), "")
		if err != nil {
			return fmt.Errorf("build insert team game query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert team game %s: %w", game.GameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put team cache: %w", err)
	}
	return nil
}

func (r *TeamStatsRepository) ListRefs(ctx context.Context) ([]teamstats.CachedTeamRef, error) {
	query, args, err := qb.Select(
		"t.team_id",
		"t.team_name",
		"(SELECT COUNT(*) FROM team_stat_games g WHERE g.team_id = t.team_id) AS game_count",
	).
		From("team_stats_caches t").
		OrderBy("t.team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team refs query: %w", err)
	}

	var rows []teamCacheRefModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team refs: %w", err)
	}

	refs := make([]teamstats.CachedTeamRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, teamstats.CachedTeamRef{
			TeamID:    row.TeamID,
			TeamName:  row.TeamName,
			GameCount: row.GameCount,
		})
	}
	return refs, nil
}

func (r *TeamStatsRepository) listGames(ctx context.Context, teamID string) ([]teamstats.GameStatRecord, error) {
	query, args, err := qb.Select(
		"team_id", "game_id", "game_date", "opponent_id", "opponent_name", "is_home",
		"opponent_rating", "first_half_scored", "first_half_allowed",
		"second_half_scored", "second_half_allowed",
	).
		From("team_stat_games").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("game_date DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team games query: %w", err)
	}

	var rows []teamGameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team games: %w", err)
	}

	games := make([]teamstats.GameStatRecord, 0, len(rows))
	for _, row := range rows {
		games = append(games, row.toDomain())
	}
	return games, nil
}
