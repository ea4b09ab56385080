package helper

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
)

const internalErrorMessage = "an unexpected error occurred"

// SendDomainError maps service errors onto HTTP answers. Anything that is not
// a known domain kind is logged and answered with a generic 500.
func SendDomainError(c *gin.Context, err error) {
	field, message := "request", err.Error()

	var domainErr *domain.Error

	if errors.As(err, &domainErr) && domainErr.Field != "" {
		field = domainErr.Field
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConflict):
		SendBadRequestError(c, field, message)
	case errors.Is(err, domain.ErrConcurrentUpdate):
		SendConflictError(c, field, message)
	case errors.Is(err, domain.ErrNotFound):
		SendNotFoundError(c, field, message)
	case errors.Is(err, domain.ErrUnauthenticated):
		SendUnauthorizedError(c, message)
	default:
		otelzap.Ctx(c.Request.Context()).Error("unhandled error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)

		SendInternalError(c, internalErrorMessage)
	}
}
