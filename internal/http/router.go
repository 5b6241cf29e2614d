package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/meal-planner-service/internal/domain/dto"
	"github.com/guttosm/meal-planner-service/internal/metrics"
	"github.com/guttosm/meal-planner-service/internal/middleware"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	MaxBodyBytes      int64
	EnableAuth        bool
	APIKeys           map[string]bool
	TokenVerifier     *middleware.TokenVerifier
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		RequestTimeout:    35 * time.Second,
		MaxBodyBytes:      4 << 20,
		EnableIdempotency: true,
	}
}

// Handlers groups the API handlers. A nil handler leaves its routes out.
type Handlers struct {
	Plan     *PlanHandler
	Catalogs *CatalogHandler
	History  *HistoryHandler
}

// quietPaths are polled by infrastructure and not request-logged.
var quietPaths = []string{"/healthz", "/readyz", "/metrics"}

// NewRouter creates and configures the Gin router for the meal planner.
func NewRouter(handlers Handlers, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	dto.UseJSONFieldNames()
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)
	handlers.register(api, idempotency(&cfg))

	return router
}

func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept-Encoding", "Accept-Language", "Authorization", middleware.APIKeyHeader, middleware.IdempotencyKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.IdempotencyReplayedHeader, "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(quietPaths...),
		middleware.ErrorHandler(),
	)
}

func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	swagger := ginSwagger.WrapHandler(swaggerFiles.Handler)
	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{cfg.SwaggerUser: cfg.SwaggerPass}))
		authorized.GET("/*any", swagger)
		return
	}
	router.GET("/swagger/*any", swagger)
}

// configureAPIMiddleware orders the API chain: authenticate, then rate limit
// per caller, then bound the request. Idempotent replay is mounted per route,
// after the scope check.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.EnableAuth {
		api.Use(middleware.Authenticate(cfg.APIKeys, cfg.TokenVerifier))
	}
	if cfg.RateLimit > 0 {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).RateLimit())
	}
	api.Use(
		middleware.Timeout(cfg.RequestTimeout),
		middleware.BodyLimit(cfg.MaxBodyBytes),
	)
}

func idempotency(cfg *RouterConfig) gin.HandlerFunc {
	if !cfg.EnableIdempotency {
		return middleware.Idempotency(middleware.IdempotencyConfig{})
	}
	return middleware.Idempotency(middleware.DefaultIdempotencyConfig())
}
