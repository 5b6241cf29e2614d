package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/logger"
	"github.com/guttosm/meal-planner-service/internal/metrics"
	"github.com/guttosm/meal-planner-service/internal/optimizer"
	"github.com/guttosm/meal-planner-service/internal/service/cache"
)

const defaultCacheShards = 16

// PlanRequest is one planning call. A nil Catalog selects the active stored catalog.
type PlanRequest struct {
	RequestID   string
	Catalog     *model.Catalog
	Preferences model.Preferences
}

// PlanResult wraps a solution with where it came from.
type PlanResult struct {
	Solution model.Solution
	// CatalogVersion is the stored catalog version, or 0 for an inline catalog.
	CatalogVersion int
	Fingerprint    string
	Cached         bool
}

// MealPlanner plans meals for a catalog and preferences.
type MealPlanner interface {
	Plan(ctx context.Context, req PlanRequest) (PlanResult, error)
	// InvalidateCache drops every cached solution.
	InvalidateCache()
}

// RunRecorder accepts finished plan runs for history.
type RunRecorder interface {
	Record(run model.PlanRun) bool
}

// Option configures a MealPlannerService.
type Option func(*MealPlannerService)

// MealPlannerService implements MealPlanner on top of optimizer.Solve.
type MealPlannerService struct {
	lotSize        int64
	workers        int
	defaultBudget  time.Duration
	maxBudget      time.Duration
	defaultWeights model.ObjectiveWeights
	cache          cache.Cache
	catalogs       CatalogService
	recorder       RunRecorder
}

// NewMealPlannerService creates a MealPlannerService with the given options.
func NewMealPlannerService(opts ...Option) *MealPlannerService {
	s := &MealPlannerService{
		lotSize:        optimizer.DefaultLotSize,
		workers:        1,
		defaultWeights: model.DefaultObjectiveWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLotSize sets the purchase increment in scaled package units.
func WithLotSize(lotSize int64) Option {
	return func(s *MealPlannerService) {
		if lotSize > 0 {
			s.lotSize = lotSize
		}
	}
}

// WithWorkers sets the number of parallel search workers.
func WithWorkers(n int) Option {
	return func(s *MealPlannerService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithTimeBudget sets the search time used when a request gives none, and the
// ceiling applied to requested budgets. Zero values disable either.
func WithTimeBudget(def, ceiling time.Duration) Option {
	return func(s *MealPlannerService) {
		s.defaultBudget = def
		s.maxBudget = ceiling
	}
}

// WithDefaultWeights sets the objective weights used when a request gives none.
func WithDefaultWeights(w model.ObjectiveWeights) Option {
	return func(s *MealPlannerService) {
		if !w.IsZero() {
			s.defaultWeights = w
		}
	}
}

// WithCache enables solution caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *MealPlannerService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, defaultCacheShards)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *MealPlannerService) {
		s.cache = c
	}
}

// WithCatalogs sets the source of the active stored catalog.
func WithCatalogs(c CatalogService) Option {
	return func(s *MealPlannerService) {
		s.catalogs = c
	}
}

// WithRecorder records every plan run to history.
func WithRecorder(r RunRecorder) Option {
	return func(s *MealPlannerService) {
		s.recorder = r
	}
}

// Plan resolves the catalog, serves exhaustive results from the cache and
// otherwise solves. Infeasible and timed-out searches are results, not errors.
func (s *MealPlannerService) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	start := time.Now()
	log := logger.ForPlan(req.RequestID)

	catalog, version, err := s.resolveCatalog(ctx, req.Catalog)
	if err != nil {
		s.record(req, PlanResult{CatalogVersion: version}, start, err)
		return PlanResult{}, err
	}
	prefs := s.effectivePreferences(req.Preferences)

	result := PlanResult{CatalogVersion: version}
	result.Fingerprint, err = Fingerprint(catalog, prefs, s.lotSize)
	if err != nil {
		return PlanResult{}, err
	}

	if s.cache != nil {
		if sol, ok := s.cache.Get(result.Fingerprint); ok {
			result.Solution = sol
			result.Cached = true
			log.Debug().Str("fingerprint", result.Fingerprint).Msg("Serving cached plan")
			s.record(req, result, start, nil)
			return result, nil
		}
	}

	result.Solution, err = optimizer.Solve(ctx, catalog, prefs,
		optimizer.WithLotSize(s.lotSize),
		optimizer.WithWorkers(s.workers),
		optimizer.WithLogger(log),
	)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordSolve(elapsed, "error", 0)
		s.logFailure(log, err)
		s.record(req, result, start, err)
		return PlanResult{}, err
	}
	metrics.RecordSolve(elapsed, string(result.Solution.Status), result.Solution.Stats.Nodes)

	if s.cache != nil && cacheable(result.Solution.Status) {
		s.cache.Set(result.Fingerprint, result.Solution)
	}

	log.Info().
		Str("status", string(result.Solution.Status)).
		Float64("objective", result.Solution.Objective).
		Int64("nodes", result.Solution.Stats.Nodes).
		Dur("elapsed", elapsed).
		Msg("Plan solved")
	s.record(req, result, start, nil)
	return result, nil
}

// InvalidateCache clears the solution cache.
func (s *MealPlannerService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Close stops the cache's background expiry.
func (s *MealPlannerService) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

func (s *MealPlannerService) resolveCatalog(ctx context.Context, inline *model.Catalog) (model.Catalog, int, error) {
	if inline != nil {
		return *inline, 0, nil
	}
	if s.catalogs == nil {
		return model.Catalog{}, 0, ErrNoActiveCatalog
	}
	doc, err := s.catalogs.GetActive(ctx)
	if err != nil {
		return model.Catalog{}, 0, err
	}
	return doc.Catalog, doc.Version, nil
}

func (s *MealPlannerService) effectivePreferences(prefs model.Preferences) model.Preferences {
	if prefs.ObjectiveWeights.IsZero() {
		prefs.ObjectiveWeights = s.defaultWeights
	}
	if prefs.TimeBudgetMS == 0 {
		prefs.TimeBudgetMS = s.defaultBudget.Milliseconds()
	}
	if limit := s.maxBudget.Milliseconds(); limit > 0 && prefs.TimeBudgetMS > limit {
		prefs.TimeBudgetMS = limit
	}
	return prefs
}

// cacheable reports whether a status is independent of the time budget.
func cacheable(status model.Status) bool {
	return status == model.StatusOptimal || status == model.StatusInfeasible
}

func (s *MealPlannerService) logFailure(log zerolog.Logger, err error) {
	var violation *optimizer.InvariantViolation
	if errors.As(err, &violation) {
		// Already logged with detail by the reporter.
		return
	}
	log.Info().Err(err).Msg("Plan rejected")
}

func (s *MealPlannerService) record(req PlanRequest, res PlanResult, start time.Time, err error) {
	if s.recorder == nil {
		return
	}
	run := model.PlanRun{
		RequestID:       req.RequestID,
		CreatedAt:       start.UTC(),
		CatalogVersion:  res.CatalogVersion,
		Fingerprint:     res.Fingerprint,
		Preferences:     req.Preferences,
		Status:          res.Solution.Status,
		ChosenRecipeIDs: res.Solution.ChosenRecipeIDs,
		Objective:       res.Solution.Objective,
		Spend:           res.Solution.Totals.Spend,
		Nodes:           res.Solution.Stats.Nodes,
		DurationMS:      time.Since(start).Milliseconds(),
		Cached:          res.Cached,
	}
	if err != nil {
		run.Error = err.Error()
	}
	s.recorder.Record(run)
}
