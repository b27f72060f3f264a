package httpapi

import (
	"fmt"
	"net/http"

	"github.com/courtsidelive/courtside/internal/usecase"
)

func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	if h.orchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: refresh orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	summary := h.orchestrator.RefreshAll(ctx)
	writeSuccess(ctx, w, http.StatusOK, summary)
}
