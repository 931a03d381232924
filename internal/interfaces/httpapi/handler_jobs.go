package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mosescsmith/cbb/internal/usecase"
)

type internalPreloadRequest struct {
	// Date is the scoreboard day to warm, YYYY-MM-DD. Empty means today.
	Date string `json:"date"`
}

func (h *Handler) RunPreloadJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPreloadJob")
	defer span.End()

	if h.preloadService == nil {
		writeError(ctx, w, fmt.Errorf("%w: preload service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeInternalPreloadRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	date := time.Now().UTC()
	if raw := strings.TrimSpace(req.Date); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: date must be YYYY-MM-DD: %v", usecase.ErrInvalidInput, err))
			return
		}
	}

	report, err := h.preloadService.PreloadDay(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "run preload job failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func decodeInternalPreloadRequest(r *http.Request) (internalPreloadRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req internalPreloadRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return internalPreloadRequest{}, nil
		}
		return internalPreloadRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
