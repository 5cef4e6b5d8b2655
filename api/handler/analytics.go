package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/instacare/backend/pkg/httpcontext"
	analyticsUC "github.com/instacare/backend/usecase/analytics"
)

type AnalyticsHandler struct {
	baseHandler
	uc *analyticsUC.UseCase
}

func NewAnalyticsHandler(uc *analyticsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Completion rate over a trailing window
// @Tags analytics
// @Router /api/v1/analytics/completion-rate [get]
func (h *AnalyticsHandler) GetCompletionRate(ctx *fasthttp.RequestCtx) {
	period := analyticsUC.Period(ctx.QueryArgs().Peek("period"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.uc.CompletionRate(stdCtx, period)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}

// @Summary Consecutive-day completion streak
// @Tags analytics
// @Router /api/v1/analytics/streak [get]
func (h *AnalyticsHandler) GetStreak(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	streak, err := h.uc.Streak(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]int{"streak_days": streak})
}

// @Summary Per-item care scores
// @Tags analytics
// @Router /api/v1/analytics/item-scores [get]
func (h *AnalyticsHandler) GetItemScores(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	scores, err := h.uc.ItemScores(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, scores)
}

// @Summary Occurrence counts by category and item
// @Tags analytics
// @Router /api/v1/analytics/breakdown [get]
func (h *AnalyticsHandler) GetBreakdown(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	breakdown, err := h.uc.TaskBreakdown(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, breakdown)
}
