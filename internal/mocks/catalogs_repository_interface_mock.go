// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCatalogsRepositoryInterface struct {
	mock.Mock
}

func (m *MockCatalogsRepositoryInterface) GetActive(ctx context.Context) (*repository.CatalogDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CatalogDocument), args.Error(1)
}

func (m *MockCatalogsRepositoryInterface) GetByVersion(ctx context.Context, version int) (*repository.CatalogDocument, error) {
	args := m.Called(ctx, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CatalogDocument), args.Error(1)
}

func (m *MockCatalogsRepositoryInterface) Create(ctx context.Context, name string, catalog model.Catalog, createdBy string) (*repository.CatalogDocument, error) {
	args := m.Called(ctx, name, catalog, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CatalogDocument), args.Error(1)
}

func (m *MockCatalogsRepositoryInterface) List(ctx context.Context, limit int) ([]repository.CatalogDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CatalogDocument), args.Error(1)
}
