package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "tasktracker/internal/adapter/http/helper"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/request"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/port"
)

type CategoryHandler struct {
	svc port.CategoryService
}

func NewCategoryHandler(svc port.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) List(c *gin.Context) {
	callerID, ok := caller(c)

	if !ok {
		return
	}

	categories, err := h.svc.List(c.Request.Context(), callerID)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewCategoryListResponse(categories))
}

func (h *CategoryHandler) Get(c *gin.Context) {
	callerID, ok := caller(c)

	if !ok {
		return
	}

	id, ok := PathID(c, "id")

	if !ok {
		return
	}

	category, err := h.svc.Get(c.Request.Context(), callerID, id)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewCategoryResponse(category))
}

func (h *CategoryHandler) Create(c *gin.Context) {
	callerID, ok := caller(c)

	if !ok {
		return
	}

	params, ok := BindJSON[request.CategoryRequest](c)

	if !ok {
		return
	}

	category, err := h.svc.Create(c.Request.Context(), callerID, params.Name)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+formatID(category.ID))
	SendSuccess(c, http.StatusCreated, response.NewCategoryResponse(category))
}

// Update renames the category. A body id is optional but must match the path.
func (h *CategoryHandler) Update(c *gin.Context) {
	callerID, ok := caller(c)

	if !ok {
		return
	}

	id, ok := PathID(c, "id")

	if !ok {
		return
	}

	params, ok := BindJSON[request.CategoryRequest](c)

	if !ok {
		return
	}

	if params.ID != 0 && params.ID != id {
		SendDomainError(c, domain.Conflict("id", "id in body does not match id in path"))
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), callerID, id, params.Name); err != nil {
		SendDomainError(c, err)
		return
	}

	SendNoContent(c)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	callerID, ok := caller(c)

	if !ok {
		return
	}

	id, ok := PathID(c, "id")

	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), callerID, id); err != nil {
		SendDomainError(c, err)
		return
	}

	SendNoContent(c)
}

// caller answers 401 when the route was mounted without AuthMiddleware.
func caller(c *gin.Context) (int64, bool) {
	callerID, ok := middleware.CallerID(c)

	if !ok {
		SendUnauthorizedError(c, "unauthorized request")
		return 0, false
	}

	return callerID, true
}
