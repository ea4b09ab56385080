package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ct "tasktracker/pkg/context"
)

const RequestIDHeader = "X-Request-ID"

func CurrentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		current := ct.NewCurrent()

		requestID := c.GetHeader(RequestIDHeader)

		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		current.Set("request_id", requestID)
		current.Set("user_agent", c.Request.UserAgent())
		current.Set("ip_address", c.ClientIP())
		current.Set("method", c.Request.Method)
		current.Set("path", c.Request.URL.Path)

		c.Request = c.Request.WithContext(ct.SetCurrent(c.Request.Context(), current))
		c.Set("current", current)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

func GetCurrent(c *gin.Context) *ct.Current {
	if current, ok := c.Get("current"); ok {
		if curr, ok := current.(*ct.Current); ok {
			return curr
		}
	}

	if current, ok := ct.FromContext(c.Request.Context()); ok {
		return current
	}

	return ct.NewCurrent()
}
