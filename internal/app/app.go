package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"github.com/valyala/fasthttp"

	"github.com/mosescsmith/cbb/external/completion"
	"github.com/mosescsmith/cbb/external/scorefeed"
	"github.com/mosescsmith/cbb/internal/config"
	"github.com/mosescsmith/cbb/internal/domain/alias"
	"github.com/mosescsmith/cbb/internal/domain/rating"
	"github.com/mosescsmith/cbb/internal/domain/teamstats"
	cacherepo "github.com/mosescsmith/cbb/internal/infrastructure/repository/cache"
	"github.com/mosescsmith/cbb/internal/infrastructure/repository/file"
	"github.com/mosescsmith/cbb/internal/infrastructure/repository/postgres"
	"github.com/mosescsmith/cbb/internal/interfaces/httpapi"
	basecache "github.com/mosescsmith/cbb/internal/platform/cache"
	"github.com/mosescsmith/cbb/internal/platform/logging"
	"github.com/mosescsmith/cbb/internal/platform/resilience"
	"github.com/mosescsmith/cbb/internal/usecase"
)

// Services is the wired usecase layer plus whatever needs closing on
// shutdown. cmd/api consumes the HTTP server; cmd/preload consumes the
// services directly.
type Services struct {
	Resolver   *usecase.ResolverService
	Stats      *usecase.TeamStatsService
	Prediction *usecase.PredictionService
	Ranking    *usecase.RankingService
	Alias      *usecase.AliasService
	Preload    *usecase.PreloadService

	db *sqlx.DB
}

// Close releases resources held by the wired services.
func (s *Services) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewServices wires repositories, external clients, and usecase
// services from configuration. Storage is file-backed under cfg.DataDir
// unless DB_URL points at postgres, in which case team stats and
// aliases move to the database.
func NewServices(cfg config.Config, appLogger *logging.Logger) (*Services, error) {
	if appLogger == nil {
		appLogger = logging.NewNop()
	}

	svcs := &Services{}

	statsRepo, aliasRepo, err := newStorage(cfg, svcs)
	if err != nil {
		return nil, err
	}

	ratingRepo, err := newRatingRepository(cfg)
	if err != nil {
		return nil, err
	}

	rankingSource, err := file.NewRankingSource(cfg.RankingsDir)
	if err != nil {
		return nil, errors.Wrap(err, "open rankings dir")
	}

	feed := scorefeed.NewClient(scorefeed.ClientConfig{
		BaseURL:    cfg.ScoreFeedBaseURL,
		Timeout:    cfg.ScoreFeedTimeout,
		MaxRetries: cfg.ScoreFeedMaxRetries,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScoreFeedCircuitEnabled,
			FailureThreshold: cfg.ScoreFeedCircuitFailureCount,
			OpenTimeout:      cfg.ScoreFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ScoreFeedCircuitHalfOpenMaxReq,
		},
	})

	completionClient := completion.NewClient(completion.ClientConfig{
		HTTPClient: &fasthttp.Client{},
		BaseURL:    cfg.CompletionBaseURL,
		APIKey:     cfg.CompletionAPIKey,
		Model:      cfg.CompletionModel,
		Timeout:    cfg.CompletionTimeout,
		Logger:     appLogger,
	})

	svcs.Resolver = usecase.NewResolverService(statsRepo, aliasRepo, usecase.ResolverConfig{
		MatchThreshold:  cfg.MatchThreshold,
		SuggestionFloor: cfg.SuggestionFloor,
		SuggestionLimit: cfg.SuggestionLimit,
	})

	history := usecase.NewHistoryService(feed, ratingRepo, appLogger)
	history.SetMaxConsecutiveFailures(cfg.FetchMaxConsecutiveFailures)

	svcs.Stats = usecase.NewTeamStatsService(svcs.Resolver, statsRepo, history, usecase.StatsCacheConfig{
		TTL:                     cfg.StatsCacheTTL,
		GracePeriod:             cfg.StatsCacheGracePeriod,
		FullLookbackDays:        cfg.StatsFullLookbackDays,
		IncrementalLookbackDays: cfg.StatsIncrementalLookbackDays,
	}, appLogger)

	svcs.Prediction = usecase.NewPredictionService(svcs.Stats, completionClient, appLogger)
	svcs.Ranking = usecase.NewRankingService(rankingSource, cfg.RankingReloadInterval, cfg.MatchThreshold, appLogger)
	svcs.Alias = usecase.NewAliasService(aliasRepo)
	svcs.Preload = usecase.NewPreloadService(feed, svcs.Stats, cfg.PreloadWorkers, appLogger)

	return svcs, nil
}

// NewHTTPServer wires the full application and returns a configured
// http.Server ready to listen on cfg.HTTPAddr.
func NewHTTPServer(cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*http.Server, *Services, error) {
	if logger == nil {
		logger = slog.Default()
	}

	svcs, err := NewServices(cfg, appLogger)
	if err != nil {
		return nil, nil, err
	}

	handler := httpapi.NewHandler(
		svcs.Resolver,
		svcs.Stats,
		svcs.Prediction,
		svcs.Ranking,
		svcs.Alias,
		svcs.Preload,
		logger,
	)

	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return srv, svcs, nil
}

func newStorage(cfg config.Config, svcs *Services) (teamstats.Repository, alias.Repository, error) {
	if cfg.DBURL == "" {
		statsRepo, err := file.NewTeamStatsRepository(cfg.StatsDir)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open stats dir")
		}
		aliasRepo, err := file.NewAliasRepository(cfg.AliasFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open alias file")
		}
		return statsRepo, withAliasCache(cfg, aliasRepo), nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, errors.Wrap(err, "connect database")
	}
	svcs.db = db

	if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "bootstrap alias seed")
	}

	return postgres.NewTeamStatsRepository(db), withAliasCache(cfg, postgres.NewAliasRepository(db)), nil
}

func newRatingRepository(cfg config.Config) (rating.Repository, error) {
	repo, err := file.NewRatingRepository(cfg.RatingsFile)
	if err != nil {
		return nil, errors.Wrap(err, "open ratings file")
	}
	if !cfg.CacheEnabled {
		return repo, nil
	}
	return cacherepo.NewRatingRepository(repo, basecache.NewStore(cfg.CacheTTL)), nil
}

func withAliasCache(cfg config.Config, repo alias.Repository) alias.Repository {
	if !cfg.CacheEnabled {
		return repo
	}
	return cacherepo.NewAliasRepository(repo, basecache.NewStore(cfg.CacheTTL))
}
