package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/instacare/backend/api/transport"
	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/pkg/httpcontext"
	profileUC "github.com/instacare/backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Provision a profile
// @Tags profile
// @Router /api/v1/profile [post]
func (h *ProfileHandler) Provision(ctx *fasthttp.RequestCtx) {
	uid := h.userID(ctx)
	if uid == "" {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	var req transport.ProvisionProfileRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
	}

	user := &domain.User{
		ID:            uid,
		Username:      req.Username,
		Email:         req.Email,
		Name:          req.Name,
		Biography:     req.Biography,
		ReminderHours: req.ReminderHours,
	}
	if req.NotificationsEnabled != nil {
		user.NotificationsEnabled = *req.NotificationsEnabled
	} else {
		user.NotificationsEnabled = true
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Provision(stdCtx, user)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Fetch the caller's profile
// @Tags profile
// @Router /api/v1/profile [get]
func (h *ProfileHandler) Get(ctx *fasthttp.RequestCtx) {
	uid := h.userID(ctx)
	if uid == "" {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.GetProfile(stdCtx, uid)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Update the caller's profile
// @Tags profile
// @Router /api/v1/profile [put]
func (h *ProfileHandler) Update(ctx *fasthttp.RequestCtx) {
	uid := h.userID(ctx)
	if uid == "" {
		h.respondError(ctx, domain.ErrUnauthorized)
		return
	}

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	current, err := h.uc.GetProfile(stdCtx, uid)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	applyProfilePatch(current, &req)

	updated, err := h.uc.UpdateProfile(stdCtx, current)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

func applyProfilePatch(user *domain.User, req *transport.ProfileUpdateRequest) {
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Biography != nil {
		user.Biography = *req.Biography
	}
	if req.ReminderHours != nil {
		user.ReminderHours = *req.ReminderHours
	}
	if req.NotificationsEnabled != nil {
		user.NotificationsEnabled = *req.NotificationsEnabled
	}
}
