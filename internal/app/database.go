// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/meal-planner-service/config"
	"github.com/guttosm/meal-planner-service/internal/circuitbreaker"
	"github.com/guttosm/meal-planner-service/internal/repository"
)

const setupTimeout = 10 * time.Second

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                     *repository.MongoDB
	Catalogs               repository.CatalogsRepositoryInterface
	PlanRuns               repository.PlanRunsRepositoryInterface
	CatalogsCircuitBreaker *circuitbreaker.CircuitBreaker
	PlanRunsCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the guarded repositories.
// It returns nil when the database is disabled or unreachable; the service
// then runs with inline catalogs only.
func InitializeDatabase(cfg config.DatabaseConfig, retention time.Duration) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	mongoCfg := repository.DefaultMongoConfig()
	if cfg.MaxPoolSize > 0 {
		mongoCfg.MaxPoolSize = cfg.MaxPoolSize
	}
	mongoCfg.MinPoolSize = cfg.MinPoolSize

	db, err := repository.NewMongoDBWithConfig(cfg.URI, cfg.DatabaseName, mongoCfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if retention > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
		if err := db.SetPlanRunsTTL(ctx, retention); err != nil {
			log.Warn().Err(err).Msg("Failed to set plan runs TTL index")
		}
		cancel()
	}

	catalogsCB := repository.NewBreaker(breakerConfig(cfg, "mongodb_catalogs"))
	planRunsCB := repository.NewBreaker(breakerConfig(cfg, "mongodb_plan_runs"))

	return &DatabaseComponents{
		DB:                     db,
		Catalogs:               repository.NewCatalogsRepositoryWithCircuitBreaker(repository.NewCatalogsRepository(db), catalogsCB),
		PlanRuns:               repository.NewPlanRunsRepositoryWithCircuitBreaker(repository.NewPlanRunsRepository(db), planRunsCB),
		CatalogsCircuitBreaker: catalogsCB,
		PlanRunsCircuitBreaker: planRunsCB,
	}
}

func breakerConfig(cfg config.DatabaseConfig, name string) circuitbreaker.Config {
	cbCfg := circuitbreaker.DefaultConfig(name)
	if cfg.CircuitBreakerFailureThreshold > 0 {
		cbCfg.FailureThreshold = cfg.CircuitBreakerFailureThreshold
	}
	if cfg.CircuitBreakerSuccessThreshold > 0 {
		cbCfg.SuccessThreshold = cfg.CircuitBreakerSuccessThreshold
	}
	if cfg.CircuitBreakerTimeout > 0 {
		cbCfg.Cooldown = cfg.CircuitBreakerTimeout
	}
	return cbCfg
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
