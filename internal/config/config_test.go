package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "cbb-stats-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "cbb-stats-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
	})
}

func TestLoad_StatsCachePolicyDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StatsCacheTTL != 6*time.Hour {
		t.Fatalf("unexpected default stats cache ttl: %s", cfg.StatsCacheTTL)
	}
	if cfg.StatsCacheGracePeriod != 10*time.Minute {
		t.Fatalf("unexpected default grace period: %s", cfg.StatsCacheGracePeriod)
	}
	if cfg.StatsFullLookbackDays != 30 {
		t.Fatalf("unexpected default full lookback: %d", cfg.StatsFullLookbackDays)
	}
	if cfg.StatsIncrementalLookbackDays != 7 {
		t.Fatalf("unexpected default incremental lookback: %d", cfg.StatsIncrementalLookbackDays)
	}
}

func TestLoad_ResolverThresholds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.MatchThreshold != 0.85 {
			t.Fatalf("unexpected default match threshold: %v", cfg.MatchThreshold)
		}
		if cfg.SuggestionFloor != 0.4 {
			t.Fatalf("unexpected default suggestion floor: %v", cfg.SuggestionFloor)
		}
		if cfg.SuggestionLimit != 5 {
			t.Fatalf("unexpected default suggestion limit: %d", cfg.SuggestionLimit)
		}
	})

	t.Run("threshold out of range", func(t *testing.T) {
		t.Setenv("MATCH_THRESHOLD", "1.5")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for MATCH_THRESHOLD > 1")
		}
	})
}

func TestLoad_DataPathsDeriveFromDataDir(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("DATA_DIR", "/var/lib/cbb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StatsDir != "/var/lib/cbb/teams" {
		t.Fatalf("unexpected stats dir: %q", cfg.StatsDir)
	}
	if cfg.AliasFile != "/var/lib/cbb/aliases.json" {
		t.Fatalf("unexpected alias file: %q", cfg.AliasFile)
	}
	if cfg.RankingsDir != "/var/lib/cbb/rankings" {
		t.Fatalf("unexpected rankings dir: %q", cfg.RankingsDir)
	}
	if cfg.RatingsFile != "/var/lib/cbb/ratings.csv" {
		t.Fatalf("unexpected ratings file: %q", cfg.RatingsFile)
	}
}

func TestLoad_CompletionConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("COMPLETION_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CompletionEnabled {
			t.Fatalf("expected CompletionEnabled=false by default")
		}
	})

	t.Run("enabled requires base url and key", func(t *testing.T) {
		t.Setenv("COMPLETION_ENABLED", "true")
		t.Setenv("COMPLETION_BASE_URL", "")
		t.Setenv("COMPLETION_API_KEY", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when COMPLETION_ENABLED=true without base url and key")
		}
	})

	t.Run("enabled with valid values", func(t *testing.T) {
		t.Setenv("COMPLETION_ENABLED", "true")
		t.Setenv("COMPLETION_BASE_URL", "https://completion.example.com")
		t.Setenv("COMPLETION_API_KEY", "key-123")
		t.Setenv("COMPLETION_TIMEOUT", "10s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CompletionEnabled {
			t.Fatalf("expected CompletionEnabled=true")
		}
		if cfg.CompletionTimeout != 10*time.Second {
			t.Fatalf("unexpected completion timeout: %s", cfg.CompletionTimeout)
		}
		if cfg.CompletionModel != "score-predictor-1" {
			t.Fatalf("unexpected default completion model: %q", cfg.CompletionModel)
		}
	})
}

func TestLoad_ScoreFeedConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SCOREFEED_TIMEOUT", "5s")
	t.Setenv("SCOREFEED_MAX_RETRIES", "2")
	t.Setenv("SCOREFEED_CIRCUIT_FAILURE_COUNT", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ScoreFeedTimeout != 5*time.Second {
		t.Fatalf("unexpected score feed timeout: %s", cfg.ScoreFeedTimeout)
	}
	if cfg.ScoreFeedMaxRetries != 2 {
		t.Fatalf("unexpected score feed retries: %d", cfg.ScoreFeedMaxRetries)
	}
	if cfg.ScoreFeedCircuitFailureCount != 4 {
		t.Fatalf("unexpected circuit failure count: %d", cfg.ScoreFeedCircuitFailureCount)
	}
	if cfg.FetchMaxConsecutiveFailures != 3 {
		t.Fatalf("unexpected default fetch failure cap: %d", cfg.FetchMaxConsecutiveFailures)
	}
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}
