package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/session"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/metrics"
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AuthConfig supplies the session cookie name and secret.
	AuthConfig *config.AuthConfig

	// Metrics instruments requests; nil disables instrumentation.
	Metrics *metrics.Metrics

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// RootHandler serves the application's single dispatching path.
	RootHandler *handlers.RootHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Metrics - request counters and latency
//  4. Logging - request logging (skips health endpoints)
//  5. Sessions - cookie-backed session state
//
// Route groups:
//   - /-/ (internal): health endpoints and metrics, no session
//   - / : the application, GET and POST dispatch on parameters
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
	)

	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Middleware())
	}

	engine.Use(middleware.Logging(cfg.Logger))

	// Health endpoints sit outside the session middleware
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.Metrics != nil {
		engine.GET("/-/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	if cfg.RootHandler != nil {
		root := engine.Group("/")
		root.Use(session.Middleware(cfg.AuthConfig.SessionName, cfg.AuthConfig.SessionSecret))
		root.GET("", cfg.RootHandler.Get)
		root.POST("", cfg.RootHandler.Post)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
