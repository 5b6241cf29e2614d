// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/meal-planner-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockPlanRunsRepositoryInterface struct {
	mock.Mock
}

func (m *MockPlanRunsRepositoryInterface) Create(ctx context.Context, run *repository.PlanRunDocument) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockPlanRunsRepositoryInterface) CreateMany(ctx context.Context, runs []*repository.PlanRunDocument) error {
	args := m.Called(ctx, runs)
	return args.Error(0)
}

func (m *MockPlanRunsRepositoryInterface) Query(ctx context.Context, opts repository.PlanRunQueryOptions) ([]*repository.PlanRunDocument, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.PlanRunDocument), args.Error(1)
}

func (m *MockPlanRunsRepositoryInterface) Count(ctx context.Context, opts repository.PlanRunQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
