package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/pkg/httpcontext"
	authUC "github.com/taskhive/backend/usecase/auth"
	profileUC "github.com/taskhive/backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	uc   *profileUC.UseCase
	auth *authUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, auth *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		auth:        auth,
	}
}

// @Summary Get the authenticated user
// @Tags users
// @Router /users/me [get]
func (h *ProfileHandler) Me(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Get(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Update the authenticated user
// @Tags users
// @Router /users/me [patch]
func (h *ProfileHandler) UpdateMe(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	parsed, err := transport.ParseProfilePatch(ctx.PostBody())
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Update(stdCtx, userID, profileUC.Patch{
		Name:     parsed.Name,
		Email:    parsed.Email,
		Password: parsed.Password,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Delete the authenticated account and all of its tasks
// @Tags users
// @Router /users/me [delete]
func (h *ProfileHandler) DeleteMe(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.auth.DeleteAccount(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}
