package helper

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/model/request"
)

// BindJSON decodes and validates the body into T. On failure the error answer
// is already written and ok is false.
func BindJSON[T any](c *gin.Context) (params T, ok bool) {
	if err := c.ShouldBindJSON(&params); err != nil {
		if errors.Is(err, request.ErrInvalidReference) {
			SendBadRequestError(c, "categoryId", "categoryId must be a number or null")
			return params, false
		}

		SendBadRequestError(c, "request", "invalid request body")
		return params, false
	}

	if err := validation.Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return params, false
	}

	return params, true
}

// PathID parses a positive integer path parameter.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)

	if err != nil || id <= 0 {
		SendBadRequestError(c, name, name+" must be a positive integer")
		return 0, false
	}

	return id, true
}
