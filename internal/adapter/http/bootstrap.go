package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/adapter/http/routes"
	"tasktracker/internal/core/port"
	"tasktracker/pkg/auth"
	"tasktracker/pkg/config"
	"tasktracker/pkg/ratelimit"
	"tasktracker/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

type ServerDeps struct {
	Config  *config.AppConfig
	DB      *database.DB
	Store   ratelimit.Store
	Metrics *tracing.AppMetrics
	Logger  *otelzap.Logger
}

func NewRouter(deps ServerDeps) *gin.Engine {
	cfg := deps.Config

	tokens := auth.NewTokenManager(cfg.JWT.Key, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL.Duration)

	var recorder port.OperationRecorder

	if deps.Metrics != nil {
		recorder = deps.Metrics
	}

	container := NewContainer(deps.DB, tokens, recorder)

	options := routes.Options{
		ServiceName:  cfg.ServiceName,
		Tokens:       tokens,
		Metrics:      deps.Metrics,
		Logger:       deps.Logger,
		EnforceHTTPS: cfg.EnforceHTTPS,
	}

	if cfg.RateLimit.Enabled && deps.Store != nil {
		options.Limiter = ratelimit.NewLimiter(deps.Store, rateLimitRules(cfg))
	}

	return routes.SetupRouter(container.Handlers(), options)
}

// StartServer serves until ctx is cancelled, then drains in-flight requests.
func StartServer(ctx context.Context, deps ServerDeps) error {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:         ":" + deps.Config.Port,
		Handler:      NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	deps.Logger.Info("Server starting",
		zap.String("port", deps.Config.Port),
		zap.String("environment", deps.Config.Environment),
		zap.String("database_driver", deps.Config.Database.Driver),
		zap.Bool("rate_limit_enabled", deps.Config.RateLimit.Enabled),
		zap.Bool("https_enforced", deps.Config.EnforceHTTPS))

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	deps.Logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func rateLimitRules(cfg *config.AppConfig) map[string]ratelimit.Rule {
	rules := make(map[string]ratelimit.Rule, len(cfg.RateLimit.Rules))

	for endpoint, rule := range cfg.RateLimit.Rules {
		rules[endpoint] = ratelimit.Rule{Requests: rule.Requests, Window: rule.Window.Duration}
	}

	return rules
}
