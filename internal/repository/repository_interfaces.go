package repository

import (
	"context"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

// CatalogsRepositoryInterface defines the interface for stored catalog operations.
type CatalogsRepositoryInterface interface {
	GetActive(ctx context.Context) (*CatalogDocument, error)
	GetByVersion(ctx context.Context, version int) (*CatalogDocument, error)
	Create(ctx context.Context, name string, catalog model.Catalog, createdBy string) (*CatalogDocument, error)
	List(ctx context.Context, limit int) ([]CatalogDocument, error)
}

// PlanRunsRepositoryInterface defines the interface for plan run history operations.
type PlanRunsRepositoryInterface interface {
	Create(ctx context.Context, run *PlanRunDocument) error
	CreateMany(ctx context.Context, runs []*PlanRunDocument) error
	Query(ctx context.Context, opts PlanRunQueryOptions) ([]*PlanRunDocument, error)
	Count(ctx context.Context, opts PlanRunQueryOptions) (int64, error)
}

var (
	_ CatalogsRepositoryInterface = (*CatalogsRepository)(nil)
	_ CatalogsRepositoryInterface = (*CatalogsRepositoryWithCircuitBreaker)(nil)
	_ PlanRunsRepositoryInterface = (*PlanRunsRepository)(nil)
	_ PlanRunsRepositoryInterface = (*PlanRunsRepositoryWithCircuitBreaker)(nil)
)
