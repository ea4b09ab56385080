package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	. "tasktracker/internal/adapter/http/helper"
	"tasktracker/internal/core/model/response"
)

type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db HealthChecker
}

func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		otelzap.Ctx(ctx).Error("health check failed", zap.Error(err))
		SendSuccess(c, http.StatusServiceUnavailable, response.HealthResponse{Status: "unavailable", Database: "down"})
		return
	}

	SendSuccess(c, http.StatusOK, response.HealthResponse{Status: "ok", Database: "up"})
}
