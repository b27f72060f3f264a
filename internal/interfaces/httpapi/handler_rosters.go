package httpapi

import (
	"net/http"

	"github.com/courtsidelive/courtside/internal/domain/roster"
)

type rostersDTO struct {
	TeamNames []string      `json:"teamNames"`
	Teams     []roster.Team `json:"teams"`
}

func (h *Handler) GetRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosters")
	defer span.End()

	data := h.rosterService.Refresh(ctx)
	teams := data.Chart.Teams
	if teams == nil {
		teams = []roster.Team{}
	}

	writeSuccess(ctx, w, http.StatusOK, rostersDTO{
		TeamNames: data.Chart.TeamNames(),
		Teams:     teams,
	})
}
