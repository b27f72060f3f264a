package httpapi

import (
	"net/http"

	"github.com/courtsidelive/courtside/internal/domain/headline"
	"github.com/courtsidelive/courtside/internal/domain/social"
)

type headlinesDTO struct {
	Headlines []headline.Headline `json:"headlines"`
	Count     int                 `json:"count"`
}

type feedDTO struct {
	Posts []social.Post `json:"posts"`
	Count int           `json:"count"`
}

func (h *Handler) GetHeadlines(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadlines")
	defer span.End()

	items := h.headlinesService.Refresh(ctx)
	if items == nil {
		items = []headline.Headline{}
	}

	writeSuccess(ctx, w, http.StatusOK, headlinesDTO{
		Headlines: items,
		Count:     len(items),
	})
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFeed")
	defer span.End()

	posts := h.feedService.Refresh(ctx)
	if posts == nil {
		posts = []social.Post{}
	}

	writeSuccess(ctx, w, http.StatusOK, feedDTO{
		Posts: posts,
		Count: len(posts),
	})
}
