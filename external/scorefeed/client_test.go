package scorefeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mosescsmith/cbb/internal/platform/logging"
	"github.com/mosescsmith/cbb/internal/platform/resilience"
	"github.com/mosescsmith/cbb/internal/usecase"
)

const scoreboardFixture = `{
	"events": [
		{
			"id": "401700999",
			"date": "2026-02-09T00:00Z",
			"competitions": [
				{
					"competitors": [
						{"homeAway": "home", "team": {"id": "12", "slug": "arizona-wildcats", "displayName": "Arizona Wildcats"}},
						{"homeAway": "away", "team": {"id": "150", "slug": "duke-blue-devils", "displayName": "Duke Blue Devils"}}
					]
				}
			]
		},
		{"id": "", "competitions": []}
	]
}`

const gameDetailFixture = `{
	"header": {
		"id": "401700999",
		"competitions": [
			{
				"date": "2026-02-09T00:00Z",
				"competitors": [
					{
						"homeAway": "home",
						"team": {"id": "12", "slug": "arizona-wildcats", "displayName": "Arizona Wildcats"},
						"linescores": [{"value": 38}, {"value": 41}]
					},
					{
						"homeAway": "away",
						"team": {"id": "150", "slug": "duke-blue-devils", "displayName": "Duke Blue Devils"},
						"linescores": [{"value": 33}, {"value": 36}]
					}
				]
			}
		]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
	})
	return client, server
}

func TestClient_GetScoreboard(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scoreboard" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("dates"); got != "20260209" {
			t.Errorf("dates = %s, want 20260209", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scoreboardFixture))
	})

	matchups, err := client.GetScoreboard(context.Background(), time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetScoreboard error: %v", err)
	}
	if len(matchups) != 1 {
		t.Fatalf("parsed %d matchups, want 1", len(matchups))
	}
	got := matchups[0]
	if got.GameID != "401700999" || got.HomeSlug != "arizona-wildcats" || got.AwaySlug != "duke-blue-devils" {
		t.Fatalf("unexpected matchup: %+v", got)
	}
	if got.Date.IsZero() {
		t.Fatal("event date not parsed")
	}
}

func TestClient_GetGameDetail(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("event"); got != "401700999" {
			t.Errorf("event = %s, want 401700999", got)
		}
		_, _ = w.Write([]byte(gameDetailFixture))
	})

	detail, err := client.GetGameDetail(context.Background(), "401700999")
	if err != nil {
		t.Fatalf("GetGameDetail error: %v", err)
	}
	if len(detail.Teams) != 2 {
		t.Fatalf("parsed %d teams, want 2", len(detail.Teams))
	}
	home := detail.Teams[0]
	if !home.IsHome || home.Slug != "arizona-wildcats" || home.TeamID != "12" {
		t.Fatalf("unexpected home line: %+v", home)
	}
	if len(home.Periods) != 2 || home.Periods[0] != 38 || home.Periods[1] != 41 {
		t.Fatalf("unexpected home periods: %v", home.Periods)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(gameDetailFixture))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: 1,
		Logger:     logging.NewNop(),
	})

	if _, err := client.GetGameDetail(context.Background(), "401700999"); err != nil {
		t.Fatalf("GetGameDetail error after retry: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("server hit %d times, want 2", hits.Load())
	}
}

func TestClient_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := client.GetGameDetail(context.Background(), "401700999"); err == nil {
		t.Fatal("expected error for 404")
	}
	if hits.Load() != 1 {
		t.Fatalf("server hit %d times, want no retries on 404", hits.Load())
	}
}

func TestClient_CircuitBreakerRejectsWhenOpen(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := client.GetGameDetail(ctx, "401700999"); err == nil {
			t.Fatal("expected transport error")
		}
	}

	before := hits.Load()
	_, err := client.GetGameDetail(ctx, "401700999")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable from open breaker, got %v", err)
	}
	if hits.Load() != before {
		t.Fatal("open breaker still reached the server")
	}
}
