package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/courtsidelive/courtside/internal/usecase"
)

type Handler struct {
	scoresService    *usecase.ScoresService
	headlinesService *usecase.HeadlinesService
	feedService      *usecase.FeedService
	rosterService    *usecase.RosterService
	rankingsService  *usecase.RankingsService
	statusService    *usecase.StatusService
	orchestrator     *usecase.Orchestrator
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	scoresService *usecase.ScoresService,
	headlinesService *usecase.HeadlinesService,
	feedService *usecase.FeedService,
	rosterService *usecase.RosterService,
	rankingsService *usecase.RankingsService,
	statusService *usecase.StatusService,
	orchestrator *usecase.Orchestrator,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		scoresService:    scoresService,
		headlinesService: headlinesService,
		feedService:      feedService,
		rosterService:    rosterService,
		rankingsService:  rankingsService,
		statusService:    statusService,
		orchestrator:     orchestrator,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.statusService.Report(ctx))
}
