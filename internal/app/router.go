// Package app provides router configuration.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/meal-planner-service/config"
	"github.com/guttosm/meal-planner-service/internal/domain/dto"
	"github.com/guttosm/meal-planner-service/internal/http"
	"github.com/guttosm/meal-planner-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handlers      http.Handlers
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the handlers, health checks and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) (*RouterComponents, error) {
	limits := dto.PlanLimits{
		MaxMealCount:  cfg.Solver.MaxMealCount,
		MaxTimeBudget: cfg.Solver.MaxTimeBudget,
	}
	handlers := http.Handlers{
		Plan:     http.NewPlanHandler(services.Planner, limits),
		Catalogs: http.NewCatalogHandler(services.Catalogs, services.Planner),
		History:  http.NewHistoryHandler(services.History),
	}

	healthHandler := http.NewHealthHandler()
	if db != nil {
		healthHandler.RegisterChecker("mongodb", http.CheckerFunc(db.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker("mongodb_catalogs", db.CatalogsCircuitBreaker)
		healthHandler.RegisterCircuitBreaker("mongodb_plan_runs", db.PlanRunsCircuitBreaker)
	}

	var verifier *middleware.TokenVerifier
	if cfg.Auth.JWTSecretKey != "" {
		var err error
		verifier, err = middleware.NewTokenVerifier(cfg.Auth.JWTSecretKey, cfg.Auth.JWTIssuer)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Auth.Enabled && verifier == nil && len(cfg.Auth.APIKeys) == 0 {
		log.Warn().Msg("AUTH_ENABLED is set but neither API_KEYS nor JWT_SECRET_KEY is configured; API is open")
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		MaxBodyBytes:      cfg.Server.MaxBodyBytes,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		TokenVerifier:     verifier,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
	}

	return &RouterComponents{
		Handlers:      handlers,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}, nil
}
