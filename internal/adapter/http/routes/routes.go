package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"tasktracker/internal/adapter/http/handler"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/pkg/ratelimit"
	"tasktracker/pkg/tracing"
)

type HandlersConfig struct {
	AuthHandler     *handler.AuthHandler
	CategoryHandler *handler.CategoryHandler
	TodoHandler     *handler.TodoHandler
	HealthHandler   *handler.HealthHandler
}

// Options carries the cross cutting pieces. Nil Limiter, Metrics or Logger
// switch the matching middleware off.
type Options struct {
	ServiceName  string
	Tokens       middleware.TokenVerifier
	Limiter      *ratelimit.Limiter
	Metrics      *tracing.AppMetrics
	Logger       *otelzap.Logger
	EnforceHTTPS bool
}

func SetupRouter(handlers HandlersConfig, options Options) *gin.Engine {
	router := gin.New()

	// The browser client calls /api/Auth/login; fixed path redirects make
	// route matching case insensitive.
	router.RedirectFixedPath = true

	if options.ServiceName != "" {
		router.Use(otelgin.Middleware(options.ServiceName))
	}

	router.Use(gin.Recovery())
	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.CORSMiddleware())

	if options.Logger != nil {
		router.Use(middleware.LoggingMiddleware(options.Logger))
		router.Use(middleware.NewHTTPSEnforcer(options.EnforceHTTPS, options.Logger.Logger).Middleware())
	}

	if options.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(options.Metrics))
	}

	if handlers.HealthHandler != nil {
		router.GET("/health", handlers.HealthHandler.Check)
	}

	api := router.Group("/api")

	if handlers.AuthHandler != nil {
		setupPublicRoutes(api, handlers.AuthHandler, options)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(options.Tokens))

	if options.Limiter != nil {
		protected.Use(middleware.RateLimitMiddleware(options.Limiter, options.Metrics))
	}

	if handlers.CategoryHandler != nil {
		setupCategoryRoutes(protected, handlers.CategoryHandler)
	}

	if handlers.TodoHandler != nil {
		setupTodoRoutes(protected, handlers.TodoHandler)
	}

	return router
}

func setupPublicRoutes(api *gin.RouterGroup, authHandler *handler.AuthHandler, options Options) {
	public := api.Group("/Auth")

	if options.Limiter != nil {
		public.Use(middleware.RateLimitMiddleware(options.Limiter, options.Metrics))
	}

	{
		public.POST("/Register", authHandler.Register)
		public.POST("/Login", authHandler.Login)
	}
}

func setupCategoryRoutes(protected *gin.RouterGroup, categoryHandler *handler.CategoryHandler) {
	categories := protected.Group("/ItemCategories")
	{
		categories.GET("", categoryHandler.List)
		categories.POST("", categoryHandler.Create)
		categories.GET("/:id", categoryHandler.Get)
		categories.PUT("/:id", categoryHandler.Update)
		categories.DELETE("/:id", categoryHandler.Delete)
	}
}

func setupTodoRoutes(protected *gin.RouterGroup, todoHandler *handler.TodoHandler) {
	todos := protected.Group("/TodoItems")
	{
		todos.GET("", todoHandler.List)
		todos.POST("", todoHandler.Create)
		todos.GET("/:id", todoHandler.Get)
		todos.PUT("/:id", todoHandler.Update)
		todos.PATCH("/:id/status", todoHandler.UpdateStatus)
		todos.DELETE("/:id", todoHandler.Delete)
	}
}
