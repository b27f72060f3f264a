package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/status", handler.GetStatus)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/scores", handler.GetScores)
	mux.HandleFunc("GET /v1/headlines", handler.GetHeadlines)
	mux.HandleFunc("GET /v1/feed", handler.GetFeed)
	mux.HandleFunc("GET /v1/rosters", handler.GetRosters)
	mux.HandleFunc("GET /v1/rankings/positions/{pos}", handler.GetPositionBoard)
	mux.HandleFunc("GET /v1/rankings/value", handler.GetValueBoard)
	mux.HandleFunc("GET /v1/compare", handler.ComparePlayers)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshJob)))
}
