package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/instacare/backend/api/transport"
	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/pkg/httpcontext"
	"github.com/instacare/backend/repository"
	itemUC "github.com/instacare/backend/usecase/item"
)

type ItemHandler struct {
	baseHandler
	uc *itemUC.UseCase
}

func NewItemHandler(uc *itemUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List items
// @Tags items
// @Router /api/v1/items [get]
func (h *ItemHandler) GetItems(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	items, err := h.uc.ListItems(stdCtx, repository.ItemFilter{UserID: userID})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, items)
}

// @Summary Get one item
// @Tags items
// @Router /api/v1/items/{id} [get]
func (h *ItemHandler) GetItem(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing item id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	item, err := h.uc.GetItem(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, item)
}

// @Summary Create item
// @Tags items
// @Router /api/v1/items [post]
func (h *ItemHandler) CreateItem(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	item, ok := h.parseItem(ctx, userID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateItem(stdCtx, item)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update item
// @Tags items
// @Router /api/v1/items/{id} [put]
func (h *ItemHandler) UpdateItem(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	item, ok := h.parseItem(ctx, userID)
	if !ok {
		return
	}
	if item.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			item.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateItem(stdCtx, item)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete item and cascade its schedule
// @Tags items
// @Router /api/v1/items/{id} [delete]
func (h *ItemHandler) DeleteItem(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing item id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteItem(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *ItemHandler) parseItem(ctx *fasthttp.RequestCtx, userID string) (*domain.Item, bool) {
	var req transport.ItemRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return nil, false
	}

	return &domain.Item{
		ID:       req.ID,
		UserID:   userID,
		Name:     req.Name,
		Category: domain.ItemCategory(req.Category),
		Notes:    req.Notes,
	}, true
}
