package postgres

import (
	"database/sql"
	"time"

	"github.com/mosescsmith/cbb/internal/domain/teamstats"
)

type teamCacheTableModel struct {
	TeamID      string    `db:"team_id"`
	TeamName    string    `db:"team_name"`
	LastUpdated time.Time `db:"last_updated"`
}

type teamCacheRefModel struct {
	TeamID    string `db:"team_id"`
	TeamName  string `db:"team_name"`
	GameCount int    `db:"game_count"`
}

type teamGameTableModel struct {
	TeamID           string          `db:"team_id"`
	GameID           string          `db:"game_id"`
	GameDate         time.Time       `db:"game_date"`
	OpponentID       string          `db:"opponent_id"`
	OpponentName     string          `db:"opponent_name"`
	IsHome           bool            `db:"is_home"`
	OpponentRating   sql.NullFloat64 `db:"opponent_rating"`
	FirstHalfScored  int             `db:"first_half_scored"`
	FirstHalfAllowed int             `db:"first_half_allowed"`
	SecondHalfScored int             `db:"second_half_scored"`
	SecondHalfAllowed int            `db:"second_half_allowed"`
}

func gameToInsertModel(teamID string, game teamstats.GameStatRecord) teamGameTableModel {
	model := teamGameTableModel{
		TeamID:            teamID,
		GameID:            game.GameID,
		GameDate:          game.Date,
		OpponentID:        game.OpponentID,
		OpponentName:      game.OpponentName,
		IsHome:            game.IsHome,
		FirstHalfScored:   game.FirstHalf.Scored,
		FirstHalfAllowed:  game.FirstHalf.Allowed,
		SecondHalfScored:  game.SecondHalf.Scored,
		SecondHalfAllowed: game.SecondHalf.Allowed,
	}
	if game.OpponentRating != nil {
		model.OpponentRating = sql.NullFloat64{Float64: *game.OpponentRating, Valid: true}
	}
	return model
}

func (m teamGameTableModel) toDomain() teamstats.GameStatRecord {
	game := teamstats.GameStatRecord{
		GameID:       m.GameID,
		Date:         m.GameDate,
		OpponentID:   m.OpponentID,
		OpponentName: m.OpponentName,
		IsHome:       m.IsHome,
		FirstHalf:    teamstats.HalfLine{Scored: m.FirstHalfScored, Allowed: m.FirstHalfAllowed},
		SecondHalf:   teamstats.HalfLine{Scored: m.SecondHalfScored, Allowed: m.SecondHalfAllowed},
	}
	if m.OpponentRating.Valid {
		rating := m.OpponentRating.Float64
		game.OpponentRating = &rating
	}
	return game
}
