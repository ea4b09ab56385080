package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/helper"
	"tasktracker/pkg/auth"
	ct "tasktracker/pkg/context"
)

const UserIDKey = "x-user-id"

type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// AuthMiddleware rejects the request with 401 unless it carries a valid
// bearer token. The verified caller is put on the request context.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearer(c.GetHeader("Authorization"))

		if err != nil {
			helper.SendUnauthorizedError(c, "unauthorized request")
			return
		}

		claims, err := verifier.VerifyToken(token)

		if err != nil {
			otelzap.Ctx(c.Request.Context()).Info("rejected access token", zap.Error(err))
			helper.SendUnauthorizedError(c, "unauthorized request")
			return
		}

		identity := ct.Identity{UserID: claims.UserID, Username: claims.Username}

		c.Request = c.Request.WithContext(ct.WithIdentity(c.Request.Context(), identity))
		c.Set(UserIDKey, identity.UserID)

		trace.SpanFromContext(c.Request.Context()).SetAttributes(attribute.Int64("user.id", identity.UserID))

		c.Next()
	}
}

// CallerID returns the authenticated user id; handlers behind AuthMiddleware
// always have one.
func CallerID(c *gin.Context) (int64, bool) {
	identity, ok := ct.IdentityFrom(c.Request.Context())

	if !ok {
		return 0, false
	}

	return identity.UserID, true
}
