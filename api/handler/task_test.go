package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
	taskUC "github.com/taskhive/backend/usecase/task"
)

type memTaskRepo struct {
	tasks map[string]*domain.Task
	seq   int
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *memTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	r.seq++
	task.ID = fmt.Sprintf("task-%d", r.seq)
	task.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	task.UpdatedAt = task.CreatedAt
	clone := *task
	r.tasks[task.ID] = &clone
	return task, nil
}

func (r *memTaskRepo) GetByOwner(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *memTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		out = append(out, *task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if filter.Skip > 0 {
		if filter.Skip >= len(out) {
			return []domain.Task{}, nil
		}
		out = out[filter.Skip:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	existing, ok := r.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return domain.ErrTaskNotFound
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memTaskRepo) DeleteByOwner(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return task, nil
}

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
}

// call invokes a handler the way the router would after the auth gate ran:
// identity in X-User-ID, path parameter in the user value.
func call(t *testing.T, fn fasthttp.RequestHandler, method, uri, userID, pathID string, body []byte) *fasthttp.RequestCtx {
	t.Helper()

	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if body != nil {
		req.SetBody(body)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	if pathID != "" {
		ctx.SetUserValue("id", pathID)
	}
	fn(ctx)
	return ctx
}

func decodeTask(t *testing.T, ctx *fasthttp.RequestCtx) domain.Task {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(ctx.Response.Body(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	var task domain.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("decoding task: %v", err)
	}
	return task
}

func decodeTasks(t *testing.T, ctx *fasthttp.RequestCtx) []domain.Task {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(ctx.Response.Body(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	var tasks []domain.Task
	if err := json.Unmarshal(env.Data, &tasks); err != nil {
		t.Fatalf("decoding tasks: %v", err)
	}
	return tasks
}

func newTaskHandler() (*TaskHandler, *memTaskRepo) {
	repo := newMemTaskRepo()
	return NewTaskHandler(taskUC.New(repo, nil), nil, nil), repo
}

func TestCreateForcesOwner(t *testing.T) {
	h, repo := newTaskHandler()

	// The payload claims another owner; the persisted task must belong to
	// the authenticated caller.
	ctx := call(t, h.Create, http.MethodPost, "/tasks", "user-a", "",
		[]byte(`{"name":"Buy milk","owner":"user-b"}`))

	if ctx.Response.StatusCode() != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	task := decodeTask(t, ctx)
	if task.OwnerID != "user-a" {
		t.Errorf("owner = %q, want user-a", task.OwnerID)
	}
	if stored := repo.tasks[task.ID]; stored == nil || stored.OwnerID != "user-a" {
		t.Errorf("persisted owner = %+v, want user-a", stored)
	}
}

func TestCreateValidation(t *testing.T) {
	h, _ := newTaskHandler()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"description":"no name"}`},
		{name: "invalid json", body: `{"name":`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := call(t, h.Create, http.MethodPost, "/tasks", "user-a", "", []byte(tc.body))
			if ctx.Response.StatusCode() != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", ctx.Response.StatusCode())
			}
		})
	}
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	h, _ := newTaskHandler()

	created := decodeTask(t, call(t, h.Create, http.MethodPost, "/tasks", "user-a", "",
		[]byte(`{"name":"Buy milk"}`)))

	ops := []struct {
		name string
		fn   fasthttp.RequestHandler
		verb string
		body []byte
	}{
		{name: "get", fn: h.Get, verb: http.MethodGet},
		{name: "update", fn: h.Update, verb: http.MethodPatch, body: []byte(`{"name":"mine now"}`)},
		{name: "delete", fn: h.Delete, verb: http.MethodDelete},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			ctx := call(t, op.fn, op.verb, "/tasks/"+created.ID, "user-b", created.ID, op.body)
			if ctx.Response.StatusCode() != http.StatusNotFound {
				t.Fatalf("status = %d, want 404", ctx.Response.StatusCode())
			}
		})
	}

	// A genuinely absent id looks exactly the same.
	ctx := call(t, h.Get, http.MethodGet, "/tasks/ghost", "user-b", "ghost", nil)
	if ctx.Response.StatusCode() != http.StatusNotFound {
		t.Fatalf("status for absent id = %d, want 404", ctx.Response.StatusCode())
	}

	// The owner still gets it.
	ctx = call(t, h.Get, http.MethodGet, "/tasks/"+created.ID, "user-a", created.ID, nil)
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("owner get status = %d, want 200", ctx.Response.StatusCode())
	}
}

func TestUpdateAllowList(t *testing.T) {
	h, repo := newTaskHandler()

	created := decodeTask(t, call(t, h.Create, http.MethodPost, "/tasks", "user-a", "",
		[]byte(`{"name":"Buy milk"}`)))

	// A single disallowed field rejects the whole patch; the valid fields
	// beside it must not be applied.
	ctx := call(t, h.Update, http.MethodPatch, "/tasks/"+created.ID, "user-a", created.ID,
		[]byte(`{"name":"renamed","priority":5}`))
	if ctx.Response.StatusCode() != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", ctx.Response.StatusCode())
	}
	if repo.tasks[created.ID].Name != "Buy milk" {
		t.Errorf("rejected patch modified the task: %q", repo.tasks[created.ID].Name)
	}

	// A fully allowed patch applies.
	ctx = call(t, h.Update, http.MethodPatch, "/tasks/"+created.ID, "user-a", created.ID,
		[]byte(`{"name":"renamed","completed":true}`))
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	updated := decodeTask(t, ctx)
	if updated.Name != "renamed" || !updated.Completed {
		t.Errorf("patch not applied: %+v", updated)
	}
}

func TestListFiltersAndPagination(t *testing.T) {
	h, _ := newTaskHandler()

	for i := 0; i < 4; i++ {
		body := fmt.Sprintf(`{"name":"task %d","completed":%t}`, i, i%2 == 0)
		call(t, h.Create, http.MethodPost, "/tasks", "user-a", "", []byte(body))
	}
	call(t, h.Create, http.MethodPost, "/tasks", "user-b", "", []byte(`{"name":"other","completed":true}`))

	tests := []struct {
		name string
		uri  string
		want int
	}{
		{name: "all owned", uri: "/tasks", want: 4},
		{name: "completed", uri: "/tasks?completed=true", want: 2},
		{name: "incomplete", uri: "/tasks?completed=false", want: 2},
		{name: "limit", uri: "/tasks?limit=3", want: 3},
		{name: "limit and skip", uri: "/tasks?limit=3&skip=2", want: 2},
		{name: "malformed limit is unset", uri: "/tasks?limit=banana", want: 4},
		{name: "negative skip is unset", uri: "/tasks?skip=-5", want: 4},
		{name: "malformed skip is unset", uri: "/tasks?limit=2&skip=oops", want: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := call(t, h.List, http.MethodGet, tc.uri, "user-a", "", nil)
			if ctx.Response.StatusCode() != http.StatusOK {
				t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
			}
			tasks := decodeTasks(t, ctx)
			if len(tasks) != tc.want {
				t.Fatalf("got %d tasks, want %d", len(tasks), tc.want)
			}
			for _, task := range tasks {
				if task.OwnerID != "user-a" {
					t.Errorf("foreign task %s leaked into listing", task.ID)
				}
			}
		})
	}
}

func TestDeleteReturnsRecord(t *testing.T) {
	h, repo := newTaskHandler()

	created := decodeTask(t, call(t, h.Create, http.MethodPost, "/tasks", "user-a", "",
		[]byte(`{"name":"Buy milk"}`)))

	ctx := call(t, h.Delete, http.MethodDelete, "/tasks/"+created.ID, "user-a", created.ID, nil)
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, want 200", ctx.Response.StatusCode())
	}
	deleted := decodeTask(t, ctx)
	if deleted.ID != created.ID {
		t.Errorf("deleted id = %q, want %q", deleted.ID, created.ID)
	}
	if _, ok := repo.tasks[created.ID]; ok {
		t.Error("task still persisted after delete")
	}

	ctx = call(t, h.Delete, http.MethodDelete, "/tasks/"+created.ID, "user-a", created.ID, nil)
	if ctx.Response.StatusCode() != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", ctx.Response.StatusCode())
	}
}

func TestMissingIdentityIsUnauthorized(t *testing.T) {
	h, _ := newTaskHandler()

	ctx := call(t, h.List, http.MethodGet, "/tasks", "", "", nil)
	if ctx.Response.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", ctx.Response.StatusCode())
	}
}
