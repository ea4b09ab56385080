package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	. "tasktracker/internal/adapter/http/helper"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/request"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/port"
)

type AuthHandler struct {
	svc    port.AuthService
	tokens port.TokenIssuer
}

func NewAuthHandler(svc port.AuthService, tokens port.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		tokens: tokens,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, ok := BindJSON[request.SignUpRequest](c)

	if !ok {
		return
	}

	user, err := a.svc.Registration(ctx, &params)

	if err != nil {
		otelzap.Ctx(ctx).Info("Auth#Register rejected", zap.Error(err))
		SendDomainError(c, err)
		return
	}

	otelzap.Ctx(ctx).Info("user registered", zap.Int64("user_id", user.ID))

	SendMessage(c, http.StatusOK, "user created successfully")
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, ok := BindJSON[request.LoginRequest](c)

	if !ok {
		return
	}

	user, err := a.svc.Authenticate(ctx, &params)

	if errors.Is(err, domain.ErrUnauthenticated) {
		SendUnauthorizedError(c, "invalid username or password")
		return
	}

	if err != nil {
		SendDomainError(c, err)
		return
	}

	token, expiresAt, err := a.tokens.CreateToken(*user)

	if err != nil {
		otelzap.Ctx(ctx).Error("Auth#Login", zap.String("step", "create_token"), zap.Error(err))
		SendInternalError(c, "failed to generate access token")
		return
	}

	SendSuccess(c, http.StatusOK, response.LoginResponse{
		Token:      token,
		Expiration: expiresAt,
		Username:   user.Username,
	})
}
