package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mo-amir99/premium-video-server/internal/features/notification"
	"github.com/mo-amir99/premium-video-server/internal/features/static"
	"github.com/mo-amir99/premium-video-server/internal/features/user"
	"github.com/mo-amir99/premium-video-server/internal/features/video"
	"github.com/mo-amir99/premium-video-server/pkg/cache"
	"github.com/mo-amir99/premium-video-server/pkg/config"
	"github.com/mo-amir99/premium-video-server/pkg/health"
	"github.com/mo-amir99/premium-video-server/pkg/metrics"
	"github.com/mo-amir99/premium-video-server/pkg/middleware"
	"github.com/mo-amir99/premium-video-server/pkg/request"
)

// Dependencies groups what the feature handlers are built from.
type Dependencies struct {
	Videos   *video.Store
	Users    *user.Store
	Notifier *notification.Notifier
	Health   *health.Handler
	Counter  cache.Counter
}

// NewRouter builds the engine with the full middleware stack and every route.
func NewRouter(cfg *config.Config, deps Dependencies, logger *slog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Compression(middleware.BestSpeed))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CacheControl())
	router.Use(middleware.RequestSizeLimit(cfg.MaxBodyBytes))
	router.Use(metrics.Middleware())
	router.Use(request.Handler(logger))

	rateLimiter := middleware.NewRateLimiter(deps.Counter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	router.Use(rateLimiter.Middleware())

	Register(router, cfg, deps, logger)
	return router
}

// Register wires all feature routes onto the engine.
func Register(engine *gin.Engine, cfg *config.Config, deps Dependencies, logger *slog.Logger) {
	// Health endpoints stay outside /api for container orchestrators.
	engine.GET("/health", deps.Health.Health)
	engine.GET("/ready", deps.Health.Ready)
	engine.GET("/version", deps.Health.Version)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")

	video.RegisterRoutes(api, video.NewHandler(deps.Videos, logger))
	user.RegisterRoutes(api, user.NewHandler(deps.Users, logger))
	notification.RegisterRoutes(api, notification.NewHandler(deps.Notifier, logger))

	static.RegisterRoutes(engine, static.NewHandler(cfg.StaticDir))
}
