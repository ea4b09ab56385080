package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	. "tasktracker/internal/adapter/http/helper"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/request"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/port"
	. "tasktracker/pkg/tracing"
)

type TodoHandler struct {
	svc port.TodoService
}

func NewTodoHandler(svc port.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

func (t *TodoHandler) List(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.List", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	callerID, ok := caller(c)

	if !ok {
		return
	}

	items, err := t.svc.List(ctx, callerID)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("http.status_code", http.StatusOK))

	SendSuccess(c, http.StatusOK, response.NewTodoItemListResponse(items))
}

func (t *TodoHandler) Get(c *gin.Context) {
	callerID, ok := caller(c)

	if !ok {
		return
	}

	id, ok := PathID(c, "id")

	if !ok {
		return
	}

	item, err := t.svc.Get(c.Request.Context(), callerID, id)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewTodoItemResponse(item))
}

func (t *TodoHandler) Create(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Create", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	callerID, ok := caller(c)

	if !ok {
		return
	}

	params, ok := BindJSON[request.TodoRequest](c)

	if !ok {
		return
	}

	item, err := t.svc.Create(ctx, callerID, todoInput(params))

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	span.SetAttributes(attribute.Int64("todo.id", item.ID))

	c.Header("Location", c.Request.URL.Path+"/"+formatID(item.ID))
	SendSuccess(c, http.StatusCreated, response.NewTodoItemResponse(item))
}

// Update replaces the item. The body has to carry the same id as the path.
func (t *TodoHandler) Update(c *gin.Context) {
	callerID, ok := caller(c)

	if !ok {
		return
	}

	id, ok := PathID(c, "id")

	if !ok {
		return
	}

	params, ok := BindJSON[request.TodoRequest](c)

	if !ok {
		return
	}

	if _, err := t.svc.Update(c.Request.Context(), callerID, id, params.ID, todoInput(params)); err != nil {
		SendDomainError(c, err)
		return
	}

	SendNoContent(c)
}

func (t *TodoHandler) UpdateStatus(c *gin.Context) {
	callerID, ok := caller(c)

	if !ok {
		return
	}

	id, ok := PathID(c, "id")

	if !ok {
		return
	}

	params, ok := BindJSON[request.StatusRequest](c)

	if !ok {
		return
	}

	if _, err := t.svc.UpdateStatus(c.Request.Context(), callerID, id, domain.TodoStatus(*params.Status)); err != nil {
		SendDomainError(c, err)
		return
	}

	SendNoContent(c)
}

func (t *TodoHandler) Delete(c *gin.Context) {
	callerID, ok := caller(c)

	if !ok {
		return
	}

	id, ok := PathID(c, "id")

	if !ok {
		return
	}

	if err := t.svc.Delete(c.Request.Context(), callerID, id); err != nil {
		SendDomainError(c, err)
		return
	}

	SendNoContent(c)
}

func todoInput(params request.TodoRequest) port.TodoInput {
	input := port.TodoInput{
		Name:       params.Name,
		IsComplete: params.IsComplete,
		CategoryID: params.CategoryID.Ptr(),
	}

	if params.Status != nil {
		status := domain.TodoStatus(*params.Status)
		input.Status = &status
	}

	return input
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
