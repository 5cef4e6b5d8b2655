package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/instacare/backend/api/transport"
	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/pkg/httpcontext"
	"github.com/instacare/backend/repository"
	scheduleUC "github.com/instacare/backend/usecase/schedule"
)

type DefinitionHandler struct {
	baseHandler
	uc *scheduleUC.UseCase
}

func NewDefinitionHandler(uc *scheduleUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DefinitionHandler {
	return &DefinitionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List task definitions
// @Tags definitions
// @Router /api/v1/definitions [get]
func (h *DefinitionHandler) GetDefinitions(ctx *fasthttp.RequestCtx) {
	filter := repository.DefinitionFilter{
		ItemID: string(ctx.QueryArgs().Peek("item_id")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	defs, err := h.uc.ListDefinitions(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, defs)
}

// @Summary Create definition and generate occurrences
// @Tags definitions
// @Router /api/v1/definitions [post]
func (h *DefinitionHandler) CreateDefinition(ctx *fasthttp.RequestCtx) {
	var req transport.DefinitionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	category := domain.TaskCategory(req.TaskCategory)
	if !category.Valid() {
		h.respondInvalid(ctx, "unknown task category")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	def, occurrences, err := h.uc.CreateDefinition(stdCtx, scheduleUC.CreateDefinitionInput{
		ItemID:       req.ItemID,
		TaskCategory: category,
		Frequency: domain.Frequency{
			Kind:     domain.FrequencyKind(req.FrequencyKind),
			Interval: req.FrequencyInterval,
		},
		StartDate: req.StartDate,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondJSON(ctx, http.StatusCreated, transport.NewSuccess(def, map[string]interface{}{
		"occurrences_generated": len(occurrences),
	}))
}

// @Summary Extend a definition's occurrence horizon
// @Tags definitions
// @Router /api/v1/definitions/{id}/extend [post]
func (h *DefinitionHandler) ExtendHorizon(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing definition id")
		return
	}

	var horizon time.Time
	var req transport.ExtendHorizonRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
		if req.Horizon != "" {
			parsed, err := domain.ParseDate(req.Horizon)
			if err != nil {
				h.respondError(ctx, err)
				return
			}
			horizon = parsed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	occurrences, err := h.uc.ExtendHorizon(stdCtx, id, horizon)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewSuccess(occurrences, map[string]interface{}{
		"occurrences_generated": len(occurrences),
	}))
}

// @Summary Delete definition and its occurrences
// @Tags definitions
// @Router /api/v1/definitions/{id} [delete]
func (h *DefinitionHandler) DeleteDefinition(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing definition id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteDefinition(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
