package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/pkg/httpcontext"
	"github.com/taskhive/backend/repository"
	taskUC "github.com/taskhive/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create task
// @Tags tasks
// @Router /tasks [post]
func (h *TaskHandler) Create(ctx *fasthttp.RequestCtx) {
	ownerID := h.userID(ctx)
	if ownerID == "" {
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondError(ctx, domain.ErrInvalidPayload)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, ownerID, req.Name, req.Description, req.Completed)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary List tasks
// @Tags tasks
// @Router /tasks [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	ownerID := h.userID(ctx)
	if ownerID == "" {
		return
	}

	args := ctx.QueryArgs()
	filter := repository.TaskFilter{
		OwnerID:   ownerID,
		Completed: parseOptionalBool(string(args.Peek("completed"))),
		Limit:     parseNonNegative(string(args.Peek("limit"))),
		Skip:      parseNonNegative(string(args.Peek("skip"))),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Get task by id
// @Tags tasks
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	ownerID := h.userID(ctx)
	if ownerID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Get(stdCtx, id, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Update task
// @Tags tasks
// @Router /tasks/{id} [patch]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	ownerID := h.userID(ctx)
	if ownerID == "" {
		return
	}

	// Allow-list validation happens before the store lookup: a payload
	// with any unknown field is rejected wholesale.
	patch, err := transport.ParseTaskPatch(ctx.PostBody())
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, id, ownerID, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags tasks
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	ownerID := h.userID(ctx)
	if ownerID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	deleted, err := h.uc.Delete(stdCtx, id, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, deleted)
}

// parseOptionalBool returns a filter value only when the parameter is
// present; any non-empty value other than "true" filters for incomplete
// tasks.
func parseOptionalBool(value string) *bool {
	if value == "" {
		return nil
	}
	b := value == "true"
	return &b
}

// parseNonNegative treats malformed or negative pagination values as unset
// rather than erroring.
func parseNonNegative(value string) int {
	if v, err := strconv.Atoi(value); err == nil && v > 0 {
		return v
	}
	return 0
}
