package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/courtsidelive/courtside/internal/merge"
	"github.com/courtsidelive/courtside/internal/usecase"
)

type compareQuery struct {
	A string `validate:"required"`
	B string `validate:"required"`
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) GetPositionBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPositionBoard")
	defer span.End()

	pos := r.PathValue("pos")
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.rankingsService.PositionBoard(ctx, pos, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "position board failed", "position", pos, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

func (h *Handler) GetValueBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetValueBoard")
	defer span.End()

	direction := r.URL.Query().Get("direction")
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	board, err := h.rankingsService.ValueBoard(ctx, direction, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "value board failed", "direction", direction, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComparePlayers")
	defer span.End()

	query := compareQuery{
		A: strings.TrimSpace(r.URL.Query().Get("a")),
		B: strings.TrimSpace(r.URL.Query().Get("b")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	comparison, err := h.rankingsService.Compare(ctx, query.A, query.B)
	if err != nil {
		h.logger.WarnContext(ctx, "compare failed", "a", query.A, "b", query.B, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparison)
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return merge.DefaultBoardSize, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 100 {
		return 0, fmt.Errorf("%w: limit must be an integer between 1 and 100", usecase.ErrInvalidInput)
	}
	return limit, nil
}
