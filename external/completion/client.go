package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/mosescsmith/cbb/internal/platform/logging"
	"github.com/mosescsmith/cbb/internal/usecase"
)

const (
	defaultTimeout = 20 * time.Second
	defaultModel   = "score-predictor-1"
)

type ClientConfig struct {
	HTTPClient *fasthttp.Client
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client calls the external text-completion service with the stats
// block this core produced. It implements usecase.CompletionClient.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      model,
		timeout:    timeout,
		logger:     logger,
	}
}

type predictionRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type predictionResponse struct {
	Prediction usecase.ScorePrediction `json:"prediction"`
	Error      string                  `json:"error,omitempty"`
}

// PredictScore posts the assembled prompt and decodes the structured
// score answer.
func (c *Client) PredictScore(ctx context.Context, statsBlock, contextText string) (usecase.ScorePrediction, error) {
	if err := ctx.Err(); err != nil {
		return usecase.ScorePrediction{}, err
	}
	if c.baseURL == "" {
		return usecase.ScorePrediction{}, fmt.Errorf("completion base url is not configured")
	}

	body, err := sonic.Marshal(predictionRequest{
		Model: c.model,
		Input: buildPrompt(statsBlock, contextText),
	})
	if err != nil {
		return usecase.ScorePrediction{}, fmt.Errorf("encode completion request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/v1/predictions")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.SetBody(body)

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		c.logger.WarnContext(ctx, "completion request failed", "error", err)
		return usecase.ScorePrediction{}, fmt.Errorf("send completion request: %w", err)
	}
	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return usecase.ScorePrediction{}, fmt.Errorf("completion status=%d body=%s", status, truncateBody(resp.Body()))
	}

	var decoded predictionResponse
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		return usecase.ScorePrediction{}, fmt.Errorf("decode completion response: %w", err)
	}
	if decoded.Error != "" {
		return usecase.ScorePrediction{}, fmt.Errorf("completion rejected request: %s", decoded.Error)
	}
	return decoded.Prediction, nil
}

// buildPrompt frames the stats block with the fixed prediction
// instruction plus the caller's location/context text.
func buildPrompt(statsBlock, contextText string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Predict the half-by-half score of this college basketball matchup.\n\n")
	_, _ = buf.WriteString(statsBlock)
	if contextText = strings.TrimSpace(contextText); contextText != "" {
		_, _ = buf.WriteString("\nContext: ")
		_, _ = buf.WriteString(contextText)
		_, _ = buf.WriteString("\n")
	}
	return buf.String()
}

func truncateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
