package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/instacare/backend/api/transport"
	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/pkg/clock"
	"github.com/instacare/backend/pkg/httpcontext"
	"github.com/instacare/backend/repository"
	completionUC "github.com/instacare/backend/usecase/completion"
	scheduleUC "github.com/instacare/backend/usecase/schedule"
)

type OccurrenceHandler struct {
	baseHandler
	schedule   *scheduleUC.UseCase
	completion *completionUC.UseCase
	clock      clock.Clock
}

func NewOccurrenceHandler(
	schedule *scheduleUC.UseCase,
	completion *completionUC.UseCase,
	clk clock.Clock,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
) *OccurrenceHandler {
	if clk == nil {
		clk = clock.System()
	}
	return &OccurrenceHandler{
		baseHandler: newBaseHandler(adapter, logger),
		schedule:    schedule,
		completion:  completion,
		clock:       clk,
	}
}

// @Summary List occurrences with filters
// @Tags occurrences
// @Router /api/v1/occurrences [get]
func (h *OccurrenceHandler) GetOccurrences(ctx *fasthttp.RequestCtx) {
	filter, ok := h.parseFilter(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	occurrences, err := h.schedule.ListOccurrences(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, occurrences)
}

// @Summary Open occurrences due today
// @Tags occurrences
// @Router /api/v1/occurrences/today [get]
func (h *OccurrenceHandler) GetToday(ctx *fasthttp.RequestCtx) {
	h.respondDueOn(ctx, 0)
}

// @Summary Open occurrences due tomorrow
// @Tags occurrences
// @Router /api/v1/occurrences/tomorrow [get]
func (h *OccurrenceHandler) GetTomorrow(ctx *fasthttp.RequestCtx) {
	h.respondDueOn(ctx, 1)
}

// @Summary Open occurrences past due
// @Tags occurrences
// @Router /api/v1/occurrences/overdue [get]
func (h *OccurrenceHandler) GetOverdue(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	occurrences, err := h.schedule.ListOverdue(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, occurrences)
}

// @Summary Complete one occurrence
// @Tags occurrences
// @Router /api/v1/occurrences/{id}/complete [post]
func (h *OccurrenceHandler) Complete(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing occurrence id")
		return
	}

	var req transport.CompleteRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	occ, err := h.completion.CompleteOne(stdCtx, id, req.Note, req.AttachmentURL)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, occ)
}

// @Summary Complete every due occurrence for an item
// @Tags occurrences
// @Router /api/v1/items/{id}/complete-all [post]
func (h *OccurrenceHandler) CompleteAllDue(ctx *fasthttp.RequestCtx) {
	itemID, _ := ctx.UserValue("id").(string)
	if itemID == "" {
		h.respondInvalid(ctx, "missing item id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, occurrences, err := h.completion.CompleteAllDue(stdCtx, itemID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"completed_count": count,
		"occurrences":     occurrences,
	})
}

// @Summary Reschedule an occurrence
// @Tags occurrences
// @Router /api/v1/occurrences/{id}/reschedule [put]
func (h *OccurrenceHandler) Reschedule(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing occurrence id")
		return
	}

	var req transport.RescheduleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	occ, err := h.completion.Reschedule(stdCtx, id, req.DueDate)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, occ)
}

// @Summary Delete one occurrence
// @Tags occurrences
// @Router /api/v1/occurrences/{id} [delete]
func (h *OccurrenceHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing occurrence id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.schedule.DeleteOccurrence(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *OccurrenceHandler) respondDueOn(ctx *fasthttp.RequestCtx, daysAhead int) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	occurrences, err := h.schedule.ListDueOn(stdCtx, h.clock.Today().AddDate(0, 0, daysAhead))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, occurrences)
}

func (h *OccurrenceHandler) parseFilter(ctx *fasthttp.RequestCtx) (repository.OccurrenceFilter, bool) {
	filter := repository.OccurrenceFilter{
		ItemID:       string(ctx.QueryArgs().Peek("item_id")),
		DefinitionID: string(ctx.QueryArgs().Peek("definition_id")),
		TaskCategory: domain.TaskCategory(ctx.QueryArgs().Peek("task_category")),
	}

	if raw := string(ctx.QueryArgs().Peek("start_date")); raw != "" {
		from, err := domain.ParseDate(raw)
		if err != nil {
			h.respondError(ctx, err)
			return filter, false
		}
		filter.From = &from
	}
	if raw := string(ctx.QueryArgs().Peek("end_date")); raw != "" {
		to, err := domain.ParseDate(raw)
		if err != nil {
			h.respondError(ctx, err)
			return filter, false
		}
		filter.To = &to
	}
	if raw := string(ctx.QueryArgs().Peek("completed")); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondInvalid(ctx, "completed must be a boolean")
			return filter, false
		}
		filter.Completed = &completed
	}
	return filter, true
}
