package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mosescsmith/cbb/internal/domain/teamstats"
	"github.com/mosescsmith/cbb/internal/usecase"
)

func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveTeam")
	defer span.End()

	rawID := strings.TrimSpace(r.URL.Query().Get("id"))
	rawName := strings.TrimSpace(r.URL.Query().Get("q"))
	if rawID == "" && rawName == "" {
		writeError(ctx, w, fmt.Errorf("%w: either id or q query parameter is required", usecase.ErrInvalidInput))
		return
	}

	resolution, err := h.resolverService.Resolve(ctx, rawID, rawName)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve team failed", "id", rawID, "q", rawName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolutionToDTO(ctx, resolution))
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = teamID
	}

	result, err := h.statsService.GetTeamStats(ctx, teamID, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsResultToDTO(ctx, result))
}

type matchDTO struct {
	ResolvedID  string  `json:"resolvedId"`
	MatchedName string  `json:"matchedName"`
	Confidence  float64 `json:"confidence"`
}

type suggestionDTO struct {
	TeamID     string  `json:"teamId"`
	TeamName   string  `json:"teamName"`
	Similarity float64 `json:"similarity"`
	GameCount  int     `json:"gameCount"`
}

type resolutionDTO struct {
	Matched     bool            `json:"matched"`
	Match       *matchDTO       `json:"match,omitempty"`
	Suggestions []suggestionDTO `json:"suggestions,omitempty"`
}

type teamStatsResultDTO struct {
	Matched     bool                      `json:"matched"`
	Stale       bool                      `json:"stale"`
	Stats       *teamstats.TeamStatsCache `json:"stats,omitempty"`
	Suggestions []suggestionDTO           `json:"suggestions,omitempty"`
}

func resolutionToDTO(ctx context.Context, v usecase.Resolution) resolutionDTO {
	ctx, span := startSpan(ctx, "httpapi.resolutionToDTO")
	defer span.End()

	dto := resolutionDTO{
		Matched:     v.Matched,
		Suggestions: suggestionsToDTO(ctx, v.Suggestions),
	}
	if v.Matched {
		dto.Match = &matchDTO{
			ResolvedID:  v.Match.ResolvedID,
			MatchedName: v.Match.MatchedName,
			Confidence:  v.Match.Confidence,
		}
	}
	return dto
}

func statsResultToDTO(ctx context.Context, v usecase.TeamStatsResult) teamStatsResultDTO {
	ctx, span := startSpan(ctx, "httpapi.statsResultToDTO")
	defer span.End()

	dto := teamStatsResultDTO{
		Matched:     v.Matched,
		Stale:       v.Stale,
		Suggestions: suggestionsToDTO(ctx, v.Suggestions),
	}
	if v.Matched {
		cache := v.Cache
		dto.Stats = &cache
	}
	return dto
}

func suggestionsToDTO(ctx context.Context, items []usecase.Suggestion) []suggestionDTO {
	_, span := startSpan(ctx, "httpapi.suggestionsToDTO")
	defer span.End()

	if len(items) == 0 {
		return nil
	}
	out := make([]suggestionDTO, 0, len(items))
	for _, s := range items {
		out = append(out, suggestionDTO{
			TeamID:     s.TeamID,
			TeamName:   s.TeamName,
			Similarity: s.Similarity,
			GameCount:  s.GameCount,
		})
	}
	return out
}
