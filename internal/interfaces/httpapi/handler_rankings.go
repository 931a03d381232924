package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mosescsmith/cbb/internal/domain/ranking"
	"github.com/mosescsmith/cbb/internal/usecase"
)

type rankingMatchDTO struct {
	Row   ranking.Row `json:"row"`
	Score float64     `json:"score"`
}

type rankingCandidatesDTO struct {
	Candidates []rankingMatchDTO `json:"candidates"`
}

func (h *Handler) GetRankingBestMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRankingBestMatch")
	defer span.End()

	half, metric, err := parseRankingPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamName := strings.TrimSpace(r.URL.Query().Get("team"))
	if teamName == "" {
		writeError(ctx, w, fmt.Errorf("%w: team query parameter is required", usecase.ErrInvalidInput))
		return
	}

	row, score, found, err := h.rankingService.BestMatch(ctx, half, metric, teamName)
	if err != nil {
		h.logger.WarnContext(ctx, "ranking best match failed", "half", half, "metric", metric, "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: no ranking row matches %q", usecase.ErrNotFound, teamName))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingMatchDTO{Row: row, Score: score})
}

func (h *Handler) ListRankingCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankingCandidates")
	defer span.End()

	half, metric, err := parseRankingPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamName := strings.TrimSpace(r.URL.Query().Get("team"))
	if teamName == "" {
		writeError(ctx, w, fmt.Errorf("%w: team query parameter is required", usecase.ErrInvalidInput))
		return
	}

	floor, err := parseOptionalFloat(r.URL.Query().Get("floor"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid floor: %v", usecase.ErrInvalidInput, err))
		return
	}
	limit, err := parseOptionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid limit: %v", usecase.ErrInvalidInput, err))
		return
	}

	candidates, err := h.rankingService.Candidates(ctx, half, metric, teamName, floor, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "ranking candidates failed", "half", half, "metric", metric, "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, candidatesToDTO(ctx, candidates))
}

func parseRankingPath(r *http.Request) (ranking.Half, ranking.Metric, error) {
	half := ranking.Half(strings.ToLower(strings.TrimSpace(r.PathValue("half"))))
	metric := ranking.Metric(strings.ToLower(strings.TrimSpace(r.PathValue("metric"))))

	validHalf := false
	for _, h := range ranking.Halves {
		if half == h {
			validHalf = true
			break
		}
	}
	if !validHalf {
		return "", "", fmt.Errorf("%w: unknown half %q", usecase.ErrInvalidInput, half)
	}

	validMetric := false
	for _, m := range ranking.Metrics {
		if metric == m {
			validMetric = true
			break
		}
	}
	if !validMetric {
		return "", "", fmt.Errorf("%w: unknown metric %q", usecase.ErrInvalidInput, metric)
	}

	return half, metric, nil
}

func parseOptionalFloat(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseOptionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func candidatesToDTO(ctx context.Context, items []usecase.RankingCandidate) rankingCandidatesDTO {
	_, span := startSpan(ctx, "httpapi.candidatesToDTO")
	defer span.End()

	out := make([]rankingMatchDTO, 0, len(items))
	for _, c := range items {
		out = append(out, rankingMatchDTO{Row: c.Row, Score: c.Score})
	}
	return rankingCandidatesDTO{Candidates: out}
}
