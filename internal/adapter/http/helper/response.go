package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func SendMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, response.MessageResponse{Message: message})
}

func SendNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendError writes the error envelope and aborts the chain. message is
// repeated at the top level for clients that only read that field.
func SendError(c *gin.Context, statusCode int, code string, message string, errors []response.ValidationError, details ...any) {
	if errors == nil {
		errors = []response.ValidationError{}
	}

	errorResponse := response.ErrorResponse{
		Message: message,
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.AbortWithStatusJSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	errs := validation.FormatValidationErrors(err)
	message := "invalid request"

	if len(errs) > 0 {
		message = errs[0].Message
	}

	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", message, errs)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, []response.ValidationError{
		{Field: field, Message: message},
	})
}

func SendConflictError(c *gin.Context, field string, message string) {
	SendError(c, http.StatusConflict, "CONCURRENT_UPDATE", message, []response.ValidationError{
		{Field: field, Message: message},
	})
}

func SendUnauthorizedError(c *gin.Context, message string) {
	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message, []response.ValidationError{
		{Field: "auth", Message: message},
	})
}

func SendNotFoundError(c *gin.Context, field string, message string) {
	SendError(c, http.StatusNotFound, "NOT_FOUND", message, []response.ValidationError{
		{Field: field, Message: message},
	})
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, []response.ValidationError{
		{Field: "server", Message: message},
	})
}

func SendTooManyRequests(c *gin.Context, message string, retryAfter int) {
	SendError(c, http.StatusTooManyRequests, "RATE_LIMITED", message, []response.ValidationError{
		{Field: "request", Message: message},
	}, gin.H{"retry_after": retryAfter})
}
