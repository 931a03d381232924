package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/resolve", handler.ResolveTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/stats", handler.GetTeamStats)
	mux.HandleFunc("POST /v1/predictions", handler.PredictMatchup)
}

func registerRankingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rankings/{half}/{metric}/best-match", handler.GetRankingBestMatch)
	mux.HandleFunc("GET /v1/rankings/{half}/{metric}/candidates", handler.ListRankingCandidates)
}

func registerAliasRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/aliases", handler.ListAliases)
	mux.HandleFunc("PUT /v1/aliases/{alias}", handler.PutAlias)
	mux.HandleFunc("DELETE /v1/aliases/{alias}", handler.DeleteAlias)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/preload", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPreloadJob)))
}
