// Package app provides service initialization.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/meal-planner-service/config"
	"github.com/guttosm/meal-planner-service/internal/catalog"
	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/service"
)

const seedCreatedBy = "system"

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Planner  *service.MealPlannerService
	Catalogs service.CatalogService
	History  service.PlanHistory
	// Recorder is nil when plan history is not stored.
	Recorder *service.PlanRecorder
}

// InitializeServices builds the planner and, when db is available, the
// catalog store and plan history behind it.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	sc := &ServiceComponents{}

	opts := []service.Option{
		service.WithLotSize(cfg.Solver.LotSize),
		service.WithWorkers(cfg.Solver.Workers),
		service.WithTimeBudget(cfg.Solver.DefaultTimeBudget, cfg.Solver.MaxTimeBudget),
		service.WithDefaultWeights(model.ObjectiveWeights{
			Protein:     cfg.Solver.WeightProtein,
			Cholesterol: cfg.Solver.WeightCholesterol,
			Dislike:     cfg.Solver.WeightDislike,
		}),
	}
	if cfg.Cache.Enabled && cfg.Cache.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}

	if db != nil {
		sc.Catalogs = service.NewCatalogService(db.Catalogs)
		sc.History = service.NewPlanHistory(db.PlanRuns)
		sc.Recorder = service.NewPlanRecorder(sc.History, service.RecorderConfig{
			BufferSize: cfg.Recorder.Buffer,
			Workers:    cfg.Recorder.Workers,
		})
		opts = append(opts, service.WithCatalogs(sc.Catalogs), service.WithRecorder(sc.Recorder))

		if cfg.Database.SeedCatalogFile != "" {
			ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
			if err := seedCatalog(ctx, sc.Catalogs, cfg.Database.SeedCatalogFile); err != nil {
				log.Warn().Err(err).Str("file", cfg.Database.SeedCatalogFile).Msg("Failed to seed catalog")
			}
			cancel()
		}
	} else {
		sc.Catalogs = service.NewCatalogService(nil)
		sc.History = service.NewPlanHistory(nil)
	}

	sc.Planner = service.NewMealPlannerService(opts...)
	return sc
}

// seedCatalog stores the catalog at path unless an active one exists.
func seedCatalog(ctx context.Context, catalogs service.CatalogService, path string) error {
	_, err := catalogs.GetActive(ctx)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, service.ErrNoActiveCatalog):
		return err
	}

	c, err := catalog.Load(path)
	if err != nil {
		return err
	}
	doc, warnings, err := catalogs.Store(ctx, "seed", c, seedCreatedBy)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warn().Str("warning", w).Msg("Seed catalog warning")
	}
	log.Info().Int("version", doc.Version).Int("recipes", doc.Recipes).Msg("Seeded catalog")
	return nil
}

// Close stops background workers, flushing queued plan runs.
func (s *ServiceComponents) Close() {
	if s.Recorder != nil {
		s.Recorder.Stop()
	}
	s.Planner.Close()
}
