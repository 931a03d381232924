package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mosescsmith/cbb/internal/usecase"
)

type predictMatchupRequest struct {
	HomeID   string `json:"homeId"`
	HomeName string `json:"homeName" validate:"required,max=120"`
	AwayID   string `json:"awayId"`
	AwayName string `json:"awayName" validate:"required,max=120"`
	Context  string `json:"context" validate:"max=2000"`
}

type matchupPredictionDTO struct {
	Prediction usecase.ScorePrediction `json:"prediction"`
	Home       teamStatsResultDTO      `json:"home"`
	Away       teamStatsResultDTO      `json:"away"`
	StatsBlock string                  `json:"statsBlock"`
}

func (h *Handler) PredictMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictMatchup")
	defer span.End()

	var req predictMatchupRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	prediction, err := h.predictionService.PredictMatchup(ctx,
		usecase.TeamRef{ID: strings.TrimSpace(req.HomeID), Name: strings.TrimSpace(req.HomeName)},
		usecase.TeamRef{ID: strings.TrimSpace(req.AwayID), Name: strings.TrimSpace(req.AwayName)},
		strings.TrimSpace(req.Context),
	)
	if err != nil {
		h.logger.WarnContext(ctx, "predict matchup failed", "home", req.HomeName, "away", req.AwayName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchupPredictionToDTO(ctx, prediction))
}

func matchupPredictionToDTO(ctx context.Context, v usecase.MatchupPrediction) matchupPredictionDTO {
	ctx, span := startSpan(ctx, "httpapi.matchupPredictionToDTO")
	defer span.End()

	return matchupPredictionDTO{
		Prediction: v.Prediction,
		Home:       statsResultToDTO(ctx, v.Home),
		Away:       statsResultToDTO(ctx, v.Away),
		StatsBlock: v.StatsBlock,
	}
}
