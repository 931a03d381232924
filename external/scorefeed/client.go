package scorefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/mosescsmith/cbb/internal/domain/schedule"
	"github.com/mosescsmith/cbb/internal/platform/logging"
	"github.com/mosescsmith/cbb/internal/platform/resilience"
	"github.com/mosescsmith/cbb/internal/usecase"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball"
	defaultTimeout = 8 * time.Second
	// groups=50 selects all of Division I on the scoreboard endpoint.
	scoreboardGroup = "50"
	scoreboardLimit = "500"
	maxResponseSize = 6 << 20
)

var errScoreFeedTransient = crerr.New("score feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public college-basketball schedule feed. It
// implements schedule.Feed.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// GetScoreboard returns the day's matchups.
func (c *Client) GetScoreboard(ctx context.Context, date time.Time) ([]schedule.Matchup, error) {
	query := map[string]string{
		"dates":  date.Format("20060102"),
		"groups": scoreboardGroup,
		"limit":  scoreboardLimit,
	}

	var envelope scoreboardEnvelope
	if err := c.doJSON(ctx, "/scoreboard", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch scoreboard date=%s: %w", date.Format("2006-01-02"), err)
	}

	matchups := make([]schedule.Matchup, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		if event.ID == "" || len(event.Competitions) == 0 {
			continue
		}
		matchup := schedule.Matchup{
			GameID: event.ID,
			Date:   parseFeedTime(event.Date),
		}
		for _, competitor := range event.Competitions[0].Competitors {
			switch competitor.HomeAway {
			case "home":
				matchup.HomeSlug = competitor.Team.Slug
			case "away":
				matchup.AwaySlug = competitor.Team.Slug
			}
		}
		if matchup.HomeSlug == "" || matchup.AwaySlug == "" {
			continue
		}
		matchups = append(matchups, matchup)
	}
	return matchups, nil
}

// GetGameDetail returns the per-period line scores for one game.
func (c *Client) GetGameDetail(ctx context.Context, gameID string) (schedule.GameDetail, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return schedule.GameDetail{}, fmt.Errorf("game id is required")
	}

	var envelope gameDetailEnvelope
	if err := c.doJSON(ctx, "/summary", map[string]string{"event": gameID}, &envelope); err != nil {
		return schedule.GameDetail{}, fmt.Errorf("fetch game detail game_id=%s: %w", gameID, err)
	}
	if len(envelope.Header.Competitions) == 0 {
		return schedule.GameDetail{}, fmt.Errorf("game detail game_id=%s has no competition data", gameID)
	}

	competition := envelope.Header.Competitions[0]
	detail := schedule.GameDetail{
		GameID: gameID,
		Date:   parseFeedTime(competition.Date),
	}
	for _, competitor := range competition.Competitors {
		line := schedule.TeamLine{
			TeamID:  competitor.Team.ID,
			Slug:    competitor.Team.Slug,
			Name:    competitor.Team.DisplayName,
			IsHome:  competitor.HomeAway == "home",
			Periods: make([]int, 0, len(competitor.LineScores)),
		}
		for _, score := range competitor.LineScores {
			line.Periods = append(line.Periods, int(score.Value))
		}
		detail.Teams = append(detail.Teams, line)
	}
	return detail, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "score feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: schedule feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errScoreFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errScoreFeedTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errScoreFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: feed status=%d body=%s", errScoreFeedTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "score feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func parseFeedTime(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
