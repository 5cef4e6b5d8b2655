package handler

import (
	"bytes"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/pkg/httpcontext"
	"github.com/instacare/backend/repository"
	exportUC "github.com/instacare/backend/usecase/export"
)

type ExportHandler struct {
	baseHandler
	uc *exportUC.UseCase
}

func NewExportHandler(uc *exportUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Export occurrences as an iCalendar feed
// @Tags export
// @Router /api/v1/export/ics [get]
func (h *ExportHandler) Calendar(ctx *fasthttp.RequestCtx) {
	filter, ok := h.parseExportFilter(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	data, err := h.uc.ICS(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.SetStatusCode(http.StatusOK)
	ctx.SetContentType("text/calendar; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="maintenance_schedule.ics"`)
	ctx.SetBody(data)
}

// @Summary Export occurrences as CSV
// @Tags export
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) CSV(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var buf bytes.Buffer
	if err := h.uc.CSV(stdCtx, &buf); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.SetStatusCode(http.StatusOK)
	ctx.SetContentType("text/csv; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="maintenance_history.csv"`)
	ctx.SetBody(buf.Bytes())
}

// @Summary Full JSON backup of all tracked data
// @Tags export
// @Router /api/v1/export/json [get]
func (h *ExportHandler) Backup(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	backup, err := h.uc.JSONBackup(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, backup)
}

func (h *ExportHandler) parseExportFilter(ctx *fasthttp.RequestCtx) (repository.OccurrenceFilter, bool) {
	filter := repository.OccurrenceFilter{
		ItemID:       string(ctx.QueryArgs().Peek("item_id")),
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
	return filter, true
}
