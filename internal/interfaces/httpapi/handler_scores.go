package httpapi

import (
	"net/http"

	"github.com/courtsidelive/courtside/internal/domain/game"
)

type scoresDTO struct {
	Games   []game.Game `json:"games"`
	Count   int         `json:"count"`
	HasLive bool        `json:"hasLive"`
}

func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScores")
	defer span.End()

	games := h.scoresService.Refresh(ctx)
	if games == nil {
		games = []game.Game{}
	}

	writeSuccess(ctx, w, http.StatusOK, scoresDTO{
		Games:   games,
		Count:   len(games),
		HasLive: game.AnyLive(games),
	})
}
