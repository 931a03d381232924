package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mosescsmith/cbb/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	DBURL                          string
	DBDisablePreparedBinary        bool
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	CORSAllowedOrigins             []string
	PprofEnabled                   bool
	PprofAddr                      string
	SwaggerEnabled                 bool
	UptraceEnabled                 bool
	UptraceDSN                     string
	UptraceLogsEnabled             bool
	UptraceCaptureRequestBody      bool
	UptraceRequestBodyMaxBytes     int
	BetterStackEnabled             bool
	BetterStackEndpoint            string
	BetterStackToken               string
	BetterStackTimeout             time.Duration
	BetterStackMinLevel            logging.Level
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	DataDir                        string
	StatsDir                       string
	AliasFile                      string
	RankingsDir                    string
	RatingsFile                    string
	ScoreFeedBaseURL               string
	ScoreFeedTimeout               time.Duration
	ScoreFeedMaxRetries            int
	ScoreFeedCircuitEnabled        bool
	ScoreFeedCircuitFailureCount   int
	ScoreFeedCircuitOpenTimeout    time.Duration
	ScoreFeedCircuitHalfOpenMaxReq int
	FetchMaxConsecutiveFailures    int
	CompletionEnabled              bool
	CompletionBaseURL              string
	CompletionAPIKey               string
	CompletionModel                string
	CompletionTimeout              time.Duration
	StatsCacheTTL                  time.Duration
	StatsCacheGracePeriod          time.Duration
	StatsFullLookbackDays          int
	StatsIncrementalLookbackDays   int
	MatchThreshold                 float64
	SuggestionFloor                float64
	SuggestionLimit                int
	RankingReloadInterval          time.Duration
	PreloadWorkers                 int
	InternalJobToken               string
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackMinLevel := parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	scoreFeedTimeout, err := time.ParseDuration(getEnv("SCOREFEED_TIMEOUT", "8s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_TIMEOUT: %w", err)
	}
	if scoreFeedTimeout <= 0 {
		return Config{}, fmt.Errorf("SCOREFEED_TIMEOUT must be > 0")
	}
	scoreFeedMaxRetries, err := getEnvAsInt("SCOREFEED_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_MAX_RETRIES: %w", err)
	}
	if scoreFeedMaxRetries < 0 {
		return Config{}, fmt.Errorf("SCOREFEED_MAX_RETRIES must be >= 0")
	}
	scoreFeedCircuitEnabled, err := strconv.ParseBool(getEnv("SCOREFEED_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_CIRCUIT_ENABLED: %w", err)
	}
	scoreFeedCircuitFailureCount, err := getEnvAsInt("SCOREFEED_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if scoreFeedCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SCOREFEED_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	scoreFeedCircuitOpenTimeout, err := time.ParseDuration(getEnv("SCOREFEED_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if scoreFeedCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SCOREFEED_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	scoreFeedCircuitHalfOpenMaxReq, err := getEnvAsInt("SCOREFEED_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREFEED_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if scoreFeedCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SCOREFEED_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	fetchMaxConsecutiveFailures, err := getEnvAsInt("FETCH_MAX_CONSECUTIVE_FAILURES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_MAX_CONSECUTIVE_FAILURES: %w", err)
	}
	if fetchMaxConsecutiveFailures < 1 {
		return Config{}, fmt.Errorf("FETCH_MAX_CONSECUTIVE_FAILURES must be >= 1")
	}

	completionEnabled, err := strconv.ParseBool(getEnv("COMPLETION_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse COMPLETION_ENABLED: %w", err)
	}
	completionBaseURL := strings.TrimSpace(getEnv("COMPLETION_BASE_URL", ""))
	completionAPIKey := strings.TrimSpace(getEnv("COMPLETION_API_KEY", ""))
	if completionEnabled {
		if completionBaseURL == "" {
			return Config{}, fmt.Errorf("COMPLETION_BASE_URL is required when COMPLETION_ENABLED=true")
		}
		if completionAPIKey == "" {
			return Config{}, fmt.Errorf("COMPLETION_API_KEY is required when COMPLETION_ENABLED=true")
		}
	}
	completionTimeout, err := time.ParseDuration(getEnv("COMPLETION_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse COMPLETION_TIMEOUT: %w", err)
	}
	if completionTimeout <= 0 {
		return Config{}, fmt.Errorf("COMPLETION_TIMEOUT must be > 0")
	}

	statsCacheTTL, err := time.ParseDuration(getEnv("STATS_CACHE_TTL", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_CACHE_TTL: %w", err)
	}
	if statsCacheTTL <= 0 {
		return Config{}, fmt.Errorf("STATS_CACHE_TTL must be > 0")
	}
	statsCacheGracePeriod, err := time.ParseDuration(getEnv("STATS_CACHE_GRACE_PERIOD", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_CACHE_GRACE_PERIOD: %w", err)
	}
	if statsCacheGracePeriod <= 0 {
		return Config{}, fmt.Errorf("STATS_CACHE_GRACE_PERIOD must be > 0")
	}
	statsFullLookbackDays, err := getEnvAsInt("STATS_FULL_LOOKBACK_DAYS", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_FULL_LOOKBACK_DAYS: %w", err)
	}
	if statsFullLookbackDays < 1 {
		return Config{}, fmt.Errorf("STATS_FULL_LOOKBACK_DAYS must be >= 1")
	}
	statsIncrementalLookbackDays, err := getEnvAsInt("STATS_INCREMENTAL_LOOKBACK_DAYS", 7)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_INCREMENTAL_LOOKBACK_DAYS: %w", err)
	}
	if statsIncrementalLookbackDays < 1 {
		return Config{}, fmt.Errorf("STATS_INCREMENTAL_LOOKBACK_DAYS must be >= 1")
	}

	matchThreshold, err := getEnvAsFloat("MATCH_THRESHOLD", 0.85)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_THRESHOLD: %w", err)
	}
	if matchThreshold <= 0 || matchThreshold > 1 {
		return Config{}, fmt.Errorf("MATCH_THRESHOLD must be in (0, 1]")
	}
	suggestionFloor, err := getEnvAsFloat("SUGGESTION_FLOOR", 0.4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SUGGESTION_FLOOR: %w", err)
	}
	if suggestionFloor <= 0 || suggestionFloor >= 1 {
		return Config{}, fmt.Errorf("SUGGESTION_FLOOR must be in (0, 1)")
	}
	suggestionLimit, err := getEnvAsInt("SUGGESTION_LIMIT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SUGGESTION_LIMIT: %w", err)
	}
	if suggestionLimit < 1 {
		return Config{}, fmt.Errorf("SUGGESTION_LIMIT must be >= 1")
	}

	rankingReloadInterval, err := time.ParseDuration(getEnv("RANKING_RELOAD_INTERVAL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RANKING_RELOAD_INTERVAL: %w", err)
	}
	if rankingReloadInterval <= 0 {
		return Config{}, fmt.Errorf("RANKING_RELOAD_INTERVAL must be > 0")
	}

	preloadWorkers, err := getEnvAsInt("PRELOAD_WORKERS", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse PRELOAD_WORKERS: %w", err)
	}
	if preloadWorkers < 1 {
		return Config{}, fmt.Errorf("PRELOAD_WORKERS must be >= 1")
	}

	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "./data"))
	if dataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR cannot be empty")
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "cbb-stats-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                          strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary:        true,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		SwaggerEnabled:                 swaggerEnabled,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		UptraceLogsEnabled:             uptraceLogsEnabled,
		UptraceCaptureRequestBody:      uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes:     uptraceRequestBodyMaxBytes,
		BetterStackEnabled:             betterStackEnabled,
		BetterStackEndpoint:            betterStackEndpoint,
		BetterStackToken:               strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:             betterStackTimeout,
		BetterStackMinLevel:            betterStackMinLevel,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		DataDir:                        dataDir,
		ScoreFeedBaseURL:               strings.TrimSpace(getEnv("SCOREFEED_BASE_URL", "")),
		ScoreFeedTimeout:               scoreFeedTimeout,
		ScoreFeedMaxRetries:            scoreFeedMaxRetries,
		ScoreFeedCircuitEnabled:        scoreFeedCircuitEnabled,
		ScoreFeedCircuitFailureCount:   scoreFeedCircuitFailureCount,
		ScoreFeedCircuitOpenTimeout:    scoreFeedCircuitOpenTimeout,
		ScoreFeedCircuitHalfOpenMaxReq: scoreFeedCircuitHalfOpenMaxReq,
		FetchMaxConsecutiveFailures:    fetchMaxConsecutiveFailures,
		CompletionEnabled:              completionEnabled,
		CompletionBaseURL:              completionBaseURL,
		CompletionAPIKey:               completionAPIKey,
		CompletionModel:                strings.TrimSpace(getEnv("COMPLETION_MODEL", "score-predictor-1")),
		CompletionTimeout:              completionTimeout,
		StatsCacheTTL:                  statsCacheTTL,
		StatsCacheGracePeriod:          statsCacheGracePeriod,
		StatsFullLookbackDays:          statsFullLookbackDays,
		StatsIncrementalLookbackDays:   statsIncrementalLookbackDays,
		MatchThreshold:                 matchThreshold,
		SuggestionFloor:                suggestionFloor,
		SuggestionLimit:                suggestionLimit,
		RankingReloadInterval:          rankingReloadInterval,
		PreloadWorkers:                 preloadWorkers,
		InternalJobToken:               strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
	}
	cfg.StatsDir = strings.TrimSpace(getEnv("STATS_DIR", filepath.Join(dataDir, "teams")))
	cfg.AliasFile = strings.TrimSpace(getEnv("ALIAS_FILE", filepath.Join(dataDir, "aliases.json")))
	cfg.RankingsDir = strings.TrimSpace(getEnv("RANKINGS_DIR", filepath.Join(dataDir, "rankings")))
	cfg.RatingsFile = strings.TrimSpace(getEnv("RATINGS_FILE", filepath.Join(dataDir, "ratings.csv")))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
