package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mosescsmith/cbb/internal/domain/schedule"
	schedulemock "github.com/mosescsmith/cbb/internal/mocks/domain/schedule"
)

func TestHistoryService_Fetch_SingleGameUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	feed := schedulemock.NewFeed(t)
	gameDate := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	feed.On("GetScoreboard", mock.Anything, mock.Anything).Return([]schedule.Matchup{
		{GameID: "g-100", Date: gameDate, HomeSlug: "duke", AwaySlug: "wake-forest"},
	}, nil).Once()
	feed.On("GetGameDetail", mock.Anything, "g-100").Return(schedule.GameDetail{
		GameID: "g-100",
		Date:   gameDate,
		Teams: []schedule.TeamLine{
			{TeamID: "duke", Slug: "duke", Name: "Duke", IsHome: true, Periods: []int{40, 38}},
			{TeamID: "wake-forest", Slug: "wake-forest", Name: "Wake Forest", Periods: []int{31, 35}},
		},
	}, nil).Once()

	service := NewHistoryService(feed, &stubRatingRepository{}, nil)

	games, err := service.Fetch(ctx, "duke", "Duke", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].FirstHalf.Scored != 40 || games[0].FirstHalf.Allowed != 31 {
		t.Fatalf("unexpected first-half line: %+v", games[0].FirstHalf)
	}
	if games[0].OpponentID != "wake-forest" {
		t.Fatalf("unexpected opponent: %q", games[0].OpponentID)
	}
}

func TestHistoryService_Fetch_BreakerTripsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	feed := schedulemock.NewFeed(t)

	feed.On("GetScoreboard", mock.Anything, mock.Anything).Return(nil, errors.New("feed down")).Times(3)

	service := NewHistoryService(feed, &stubRatingRepository{}, nil)

	_, err := service.Fetch(ctx, "duke", "Duke", 10)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
