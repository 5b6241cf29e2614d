package repository

import (
	"context"
	"errors"

	"github.com/guttosm/meal-planner-service/internal/circuitbreaker"
	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewBreaker returns a breaker configured by cfg that does not count
// duplicate-key errors or version conflicts against the store.
func NewBreaker(cfg circuitbreaker.Config) *circuitbreaker.CircuitBreaker {
	cfg.IsFailure = func(err error) bool {
		return !errors.Is(err, ErrVersionConflict) &&
			!errors.Is(err, context.Canceled) &&
			!mongo.IsDuplicateKeyError(err)
	}
	return circuitbreaker.New(cfg)
}

// CatalogsRepositoryWithCircuitBreaker wraps CatalogsRepositoryInterface with circuit breaker protection.
type CatalogsRepositoryWithCircuitBreaker struct {
	repo CatalogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewCatalogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCatalogsRepositoryWithCircuitBreaker(repo CatalogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *CatalogsRepositoryWithCircuitBreaker {
	return &CatalogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

// GetActive returns the active catalog. An open circuit surfaces as
// circuitbreaker.ErrCircuitOpen so callers can tell it apart from "none stored".
func (r *CatalogsRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*CatalogDocument, error) {
	return circuitbreaker.Do(ctx, r.cb, r.repo.GetActive)
}

// GetByVersion returns one catalog version.
func (r *CatalogsRepositoryWithCircuitBreaker) GetByVersion(ctx context.Context, version int) (*CatalogDocument, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (*CatalogDocument, error) {
		return r.repo.GetByVersion(ctx, version)
	})
}

// Create stores a new active catalog version.
func (r *CatalogsRepositoryWithCircuitBreaker) Create(ctx context.Context, name string, catalog model.Catalog, createdBy string) (*CatalogDocument, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (*CatalogDocument, error) {
		return r.repo.Create(ctx, name, catalog, createdBy)
	})
}

// List returns catalog versions newest first.
func (r *CatalogsRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]CatalogDocument, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) ([]CatalogDocument, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CatalogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// PlanRunsRepositoryWithCircuitBreaker wraps PlanRunsRepositoryInterface with circuit breaker protection.
type PlanRunsRepositoryWithCircuitBreaker struct {
	repo PlanRunsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewPlanRunsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewPlanRunsRepositoryWithCircuitBreaker(repo PlanRunsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PlanRunsRepositoryWithCircuitBreaker {
	return &PlanRunsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

// Create stores one plan run. History is best effort: an open circuit drops the write.
func (r *PlanRunsRepositoryWithCircuitBreaker) Create(ctx context.Context, run *PlanRunDocument) error {
	return dropWhenOpen(r.cb.Execute(ctx, func(ctx context.Context) error {
		return r.repo.Create(ctx, run)
	}))
}

// CreateMany stores plan runs in bulk, dropping them while the circuit is open.
func (r *PlanRunsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, runs []*PlanRunDocument) error {
	return dropWhenOpen(r.cb.Execute(ctx, func(ctx context.Context) error {
		return r.repo.CreateMany(ctx, runs)
	}))
}

// Query returns plan runs matching opts.
func (r *PlanRunsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts PlanRunQueryOptions) ([]*PlanRunDocument, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) ([]*PlanRunDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the number of plan runs matching opts.
func (r *PlanRunsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts PlanRunQueryOptions) (int64, error) {
	return circuitbreaker.Do(ctx, r.cb, func(ctx context.Context) (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *PlanRunsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}
