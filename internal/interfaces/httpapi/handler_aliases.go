package httpapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mosescsmith/cbb/internal/usecase"
)

type putAliasRequest struct {
	TeamID string `json:"teamId" validate:"required,max=120"`
}

type aliasEntryDTO struct {
	Alias  string `json:"alias"`
	TeamID string `json:"teamId"`
}

func (h *Handler) ListAliases(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAliases")
	defer span.End()

	mapping, err := h.aliasService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list aliases failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]aliasEntryDTO, 0, len(mapping))
	for key, teamID := range mapping {
		items = append(items, aliasEntryDTO{Alias: key, TeamID: teamID})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Alias < items[j].Alias })

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) PutAlias(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutAlias")
	defer span.End()

	aliasName := strings.TrimSpace(r.PathValue("alias"))

	var req putAliasRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.aliasService.Set(ctx, aliasName, req.TeamID); err != nil {
		h.logger.WarnContext(ctx, "put alias failed", "alias", aliasName, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, aliasEntryDTO{Alias: aliasName, TeamID: req.TeamID})
}

func (h *Handler) DeleteAlias(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAlias")
	defer span.End()

	aliasName := strings.TrimSpace(r.PathValue("alias"))
	if err := h.aliasService.Remove(ctx, aliasName); err != nil {
		h.logger.WarnContext(ctx, "delete alias failed", "alias", aliasName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
