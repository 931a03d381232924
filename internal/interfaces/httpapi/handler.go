package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mosescsmith/cbb/internal/usecase"
)

type Handler struct {
	resolverService   *usecase.ResolverService
	statsService      *usecase.TeamStatsService
	predictionService *usecase.PredictionService
	rankingService    *usecase.RankingService
	aliasService      *usecase.AliasService
	preloadService    *usecase.PreloadService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	resolverService *usecase.ResolverService,
	statsService *usecase.TeamStatsService,
	predictionService *usecase.PredictionService,
	rankingService *usecase.RankingService,
	aliasService *usecase.AliasService,
	preloadService *usecase.PreloadService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		resolverService:   resolverService,
		statsService:      statsService,
		predictionService: predictionService,
		rankingService:    rankingService,
		aliasService:      aliasService,
		preloadService:    preloadService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
