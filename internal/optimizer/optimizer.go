// Package optimizer selects a fixed number of recipes and the cheapest purchase
// plan that covers them, maximizing a weighted nutrition score.
//
// The engine is deterministic: identical catalog and preferences produce the
// same selection, in sequential and parallel mode alike. It performs no I/O.
package optimizer

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

// Option configures Solve.
type Option func(*settings)

type settings struct {
	lotSize int64
	workers int
	log     zerolog.Logger
}

// WithLotSize sets the purchase increment in scaled package units (100 = one package).
func WithLotSize(lotSize int64) Option {
	return func(s *settings) {
		if lotSize > 0 {
			s.lotSize = lotSize
		}
	}
}

// WithWorkers enables parallel search when n > 1.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger routes catalog warnings and invariant violations to log.
func WithLogger(log zerolog.Logger) Option {
	return func(s *settings) {
		s.log = log
	}
}

// Solve builds the decision model, searches it and reports the solution.
//
// Infeasible and timed-out searches are returned as solutions with the
// matching status, not as errors. Errors are either a *ModelBuildError for
// unusable input or an *InvariantViolation.
func Solve(ctx context.Context, catalog model.Catalog, prefs model.Preferences, opts ...Option) (model.Solution, error) {
	s := settings{
		lotSize: DefaultLotSize,
		workers: 1,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	m, err := BuildModel(catalog, prefs, s.lotSize)
	if errors.Is(err, ErrInsufficientRecipes) {
		s.log.Info().Err(err).Msg("Meal count cannot be met, reporting infeasible")
		sol := model.NoSelection(model.StatusInfeasible, err.Error())
		if m != nil {
			sol.Excluded = append([]model.Exclusion(nil), m.Excluded...)
		}
		return sol, nil
	}
	if err != nil {
		return model.Solution{}, err
	}
	for _, w := range m.Warnings {
		s.log.Warn().Str("warning", w).Msg("Catalog warning")
	}

	if prefs.TimeBudgetMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(prefs.TimeBudgetMS)*time.Millisecond)
		defer cancel()
	}

	raw := Search(ctx, m, s.workers)
	s.log.Debug().
		Str("outcome", raw.Outcome.String()).
		Int("candidates", len(m.Recipes)).
		Int64("nodes", raw.Nodes).
		Int64("pruned", raw.Pruned).
		Dur("elapsed", raw.Elapsed).
		Msg("Search finished")

	return NewReporter(s.log).Report(catalog, prefs, m, raw)
}

// ValidateCatalog checks that catalog compiles into a decision model for a
// single meal. It returns the builder warnings, or a *ModelBuildError.
func ValidateCatalog(catalog model.Catalog) ([]string, error) {
	m, err := BuildModel(catalog, model.Preferences{DesiredMealCount: 1}, DefaultLotSize)
	if errors.Is(err, ErrInsufficientRecipes) {
		// Every recipe contains an allergen; still a storable catalog.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m.Warnings, nil
}
