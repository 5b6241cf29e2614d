package service

import (
	"context"
	"errors"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/optimizer"
	"github.com/guttosm/meal-planner-service/internal/repository"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrNoActiveCatalog is returned when a plan needs the stored catalog and none exists.
	ErrNoActiveCatalog = errors.New("no active catalog stored")
)

// CatalogService manages stored catalog versions.
type CatalogService interface {
	// GetActive returns the active catalog or ErrNoActiveCatalog.
	GetActive(ctx context.Context) (*repository.CatalogDocument, error)
	// Store validates catalog and saves it as the new active version. The
	// returned warnings come from compiling the catalog.
	Store(ctx context.Context, name string, catalog model.Catalog, createdBy string) (*repository.CatalogDocument, []string, error)
	// History lists stored versions newest first.
	History(ctx context.Context, limit int) ([]repository.CatalogDocument, error)
}

// CatalogServiceImpl implements CatalogService.
type CatalogServiceImpl struct {
	repo repository.CatalogsRepositoryInterface
}

// NewCatalogService creates a new catalog service. A nil repo yields a
// service whose calls return ErrRepositoryNotConfigured.
func NewCatalogService(repo repository.CatalogsRepositoryInterface) CatalogService {
	return &CatalogServiceImpl{repo: repo}
}

func (s *CatalogServiceImpl) GetActive(ctx context.Context) (*repository.CatalogDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	doc, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNoActiveCatalog
	}
	return doc, nil
}

func (s *CatalogServiceImpl) Store(ctx context.Context, name string, catalog model.Catalog, createdBy string) (*repository.CatalogDocument, []string, error) {
	if s.repo == nil {
		return nil, nil, ErrRepositoryNotConfigured
	}
	warnings, err := optimizer.ValidateCatalog(catalog)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.repo.Create(ctx, name, catalog, createdBy)
	if err != nil {
		return nil, nil, err
	}
	return doc, warnings, nil
}

func (s *CatalogServiceImpl) History(ctx context.Context, limit int) ([]repository.CatalogDocument, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}
