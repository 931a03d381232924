package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/mosescsmith/cbb/internal/domain/alias"
	"github.com/mosescsmith/cbb/internal/domain/ranking"
	"github.com/mosescsmith/cbb/internal/domain/schedule"
	"github.com/mosescsmith/cbb/internal/domain/teamstats"
	"github.com/mosescsmith/cbb/internal/infrastructure/repository/memory"
	"github.com/mosescsmith/cbb/internal/usecase"
)

type stubGameFetcher struct {
	games []teamstats.GameStatRecord
	err   error
}

func (f *stubGameFetcher) Fetch(_ context.Context, _, _ string, _ int) ([]teamstats.GameStatRecord, error) {
	return f.games, f.err
}

type stubRankingSource struct {
	tables map[string]ranking.Table
}

func (s *stubRankingSource) Load(_ context.Context, half ranking.Half, metric ranking.Metric) (ranking.Table, error) {
	return s.tables[string(half)+"_"+string(metric)], nil
}

type stubScheduleFeed struct {
	matchups []schedule.Matchup
}

func (f *stubScheduleFeed) GetScoreboard(_ context.Context, _ time.Time) ([]schedule.Matchup, error) {
	return f.matchups, nil
}

func (f *stubScheduleFeed) GetGameDetail(_ context.Context, _ string) (schedule.GameDetail, error) {
	return schedule.GameDetail{}, nil
}

type stubCompletion struct {
	prediction usecase.ScorePrediction
}

func (c *stubCompletion) PredictScore(_ context.Context, _, _ string) (usecase.ScorePrediction, error) {
	return c.prediction, nil
}

func seededCache(teamID, teamName string) teamstats.TeamStatsCache {
	now := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)
	games := []teamstats.GameStatRecord{
		{
			GameID:       teamID + "-g1",
			Date:         now.AddDate(0, 0, -2),
			OpponentID:   "opponent",
			OpponentName: "Opponent",
			IsHome:       true,
			FirstHalf:    teamstats.HalfLine{Scored: 35, Allowed: 30},
			SecondHalf:   teamstats.HalfLine{Scored: 40, Allowed: 33},
		},
	}
	return teamstats.Build(teamID, teamName, games, now)
}

func newTestRouter(t *testing.T, internalJobToken string) http.Handler {
	t.Helper()

	statsRepo := memory.NewTeamStatsRepository([]teamstats.TeamStatsCache{
		seededCache("duke", "Duke"),
		seededCache("arizona", "Arizona"),
	})
	aliasRepo := memory.NewAliasRepository(alias.Mapping{"blue-devils": "duke"})

	resolver := usecase.NewResolverService(statsRepo, aliasRepo, usecase.ResolverConfig{})
	stats := usecase.NewTeamStatsService(resolver, statsRepo, &stubGameFetcher{}, usecase.DefaultStatsCacheConfig(), nil)
	prediction := usecase.NewPredictionService(stats, &stubCompletion{
		prediction: usecase.ScorePrediction{HomeFirstHalf: 38, AwayFirstHalf: 34, HomeSecondHalf: 41, AwaySecondHalf: 36},
	}, nil)
	rankings := usecase.NewRankingService(&stubRankingSource{
		tables: map[string]ranking.Table{
			"1h_ppg": {"duke": ranking.Row{Rank: 1, Team: "Duke"}},
		},
	}, time.Minute, 0, nil)
	aliases := usecase.NewAliasService(aliasRepo)
	preload := usecase.NewPreloadService(&stubScheduleFeed{}, stats, 1, nil)

	handler := NewHandler(resolver, stats, prediction, rankings, aliases, preload, nil)
	return NewRouter(handler, nil, false, nil, internalJobToken)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, "token")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_ResolveTeam_AliasHit(t *testing.T) {
	router := newTestRouter(t, "token")

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/resolve?id=blue-devils", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if matched, _ := data["matched"].(bool); !matched {
		t.Fatalf("expected matched resolution, got %v", data)
	}
	match, _ := data["match"].(map[string]any)
	if got, _ := match["resolvedId"].(string); got != "duke" {
		t.Fatalf("expected resolvedId=duke, got %v", match["resolvedId"])
	}
}

func TestRouter_ResolveTeam_MissingParams(t *testing.T) {
	router := newTestRouter(t, "token")

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/resolve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_GetTeamStats_FreshCache(t *testing.T) {
	router := newTestRouter(t, "token")

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/duke/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if matched, _ := data["matched"].(bool); !matched {
		t.Fatalf("expected matched stats, got %v", data)
	}
	stats, _ := data["stats"].(map[string]any)
	if got, _ := stats["teamName"].(string); got != "Duke" {
		t.Fatalf("expected teamName=Duke, got %v", stats["teamName"])
	}
}

func TestRouter_PredictMatchup(t *testing.T) {
	router := newTestRouter(t, "token")

	payload := `{"homeName":"Duke","awayName":"Arizona"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/predictions", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	prediction, _ := data["prediction"].(map[string]any)
	if got, _ := prediction["homeFirstHalf"].(float64); got != 38 {
		t.Fatalf("expected homeFirstHalf=38, got %v", prediction["homeFirstHalf"])
	}
}

func TestRouter_PredictMatchup_MissingAway(t *testing.T) {
	router := newTestRouter(t, "token")

	payload := `{"homeName":"Duke"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/predictions", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_RankingBestMatch(t *testing.T) {
	router := newTestRouter(t, "token")

	req := httptest.NewRequest(http.MethodGet, "/v1/rankings/1h/ppg/best-match?team=Duke", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	row, _ := data["row"].(map[string]any)
	if got, _ := row["team"].(string); got != "Duke" {
		t.Fatalf("expected row team=Duke, got %v", row["team"])
	}
}

func TestRouter_RankingBestMatch_UnknownHalf(t *testing.T) {
	router := newTestRouter(t, "token")

	req := httptest.NewRequest(http.MethodGet, "/v1/rankings/3h/ppg/best-match?team=Duke", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_AliasLifecycle(t *testing.T) {
	router := newTestRouter(t, "token")

	put := httptest.NewRequest(http.MethodPut, "/v1/aliases/Zona", strings.NewReader(`{"teamId":"arizona"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, put)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on put, got %d: %s", rec.Code, rec.Body.String())
	}

	list := httptest.NewRequest(http.MethodGet, "/v1/aliases", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, list)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on list, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "arizona") {
		t.Fatalf("expected listed alias to target arizona: %s", rec.Body.String())
	}

	del := httptest.NewRequest(http.MethodDelete, "/v1/aliases/Zona", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, del)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on delete, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_PreloadJob_RequiresToken(t *testing.T) {
	router := newTestRouter(t, "super-secret")

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/preload", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/preload", strings.NewReader(`{"date":"2025-02-10"}`))
	req.Header.Set("X-Internal-Job-Token", "super-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}
