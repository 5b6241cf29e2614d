//go:build !integration

package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/meal-planner-service/internal/circuitbreaker"
	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/mocks"
	"github.com/guttosm/meal-planner-service/internal/repository"
)

func tightBreaker() *circuitbreaker.CircuitBreaker {
	cfg := circuitbreaker.DefaultConfig("test")
	cfg.FailureThreshold = 1
	return circuitbreaker.New(cfg)
}

func TestCatalogsRepositoryWithCircuitBreaker_GetActive(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockCatalogsRepositoryInterface)
		calls     int
		wantErr   error
		wantDoc   bool
	}{
		{
			name: "passes through the stored catalog",
			setupMock: func(m *mocks.MockCatalogsRepositoryInterface) {
				m.On("GetActive", mock.Anything).Return(&repository.CatalogDocument{Version: 3, Active: true}, nil)
			},
			calls:   1,
			wantDoc: true,
		},
		{
			name: "none stored is not a failure",
			setupMock: func(m *mocks.MockCatalogsRepositoryInterface) {
				m.On("GetActive", mock.Anything).Return(nil, nil)
			},
			calls: 2,
		},
		{
			name: "open circuit short-circuits the second call",
			setupMock: func(m *mocks.MockCatalogsRepositoryInterface) {
				m.On("GetActive", mock.Anything).Return(nil, errors.New("connection refused")).Once()
			},
			calls:   2,
			wantErr: circuitbreaker.ErrCircuitOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCatalogsRepositoryInterface)
			tt.setupMock(repo)
			wrapped := repository.NewCatalogsRepositoryWithCircuitBreaker(repo, tightBreaker())

			var doc *repository.CatalogDocument
			var err error
			for i := 0; i < tt.calls; i++ {
				doc, err = wrapped.GetActive(context.Background())
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantDoc, doc != nil)
			repo.AssertExpectations(t)
		})
	}
}

func TestCatalogsRepositoryWithCircuitBreaker_VersionConflictKeepsCircuitClosed(t *testing.T) {
	repo := new(mocks.MockCatalogsRepositoryInterface)
	repo.On("Create", mock.Anything, "weekly", mock.Anything, "ops").Return(nil, repository.ErrVersionConflict)

	cb := repository.NewBreaker(circuitbreaker.DefaultConfig("catalogs"))
	wrapped := repository.NewCatalogsRepositoryWithCircuitBreaker(repo, cb)

	for i := 0; i < 10; i++ {
		_, err := wrapped.Create(context.Background(), "weekly", testCatalog(), "ops")
		require.ErrorIs(t, err, repository.ErrVersionConflict)
	}
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestPlanRunsRepositoryWithCircuitBreaker_DropsWritesWhileOpen(t *testing.T) {
	repo := new(mocks.MockPlanRunsRepositoryInterface)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()

	cb := tightBreaker()
	wrapped := repository.NewPlanRunsRepositoryWithCircuitBreaker(repo, cb)

	assert.Error(t, wrapped.Create(context.Background(), &repository.PlanRunDocument{}))
	assert.NoError(t, wrapped.Create(context.Background(), &repository.PlanRunDocument{}))
	assert.NoError(t, wrapped.CreateMany(context.Background(), []*repository.PlanRunDocument{{}}))
	assert.Same(t, cb, wrapped.GetCircuitBreaker())
	repo.AssertExpectations(t)
}

func TestPlanRunsRepositoryWithCircuitBreaker_Query(t *testing.T) {
	repo := new(mocks.MockPlanRunsRepositoryInterface)
	opts := repository.PlanRunQueryOptions{Status: "optimal", Limit: 5}
	runs := []*repository.PlanRunDocument{{Status: "optimal"}}
	repo.On("Query", mock.Anything, opts).Return(runs, nil)
	repo.On("Count", mock.Anything, opts).Return(int64(1), nil)

	wrapped := repository.NewPlanRunsRepositoryWithCircuitBreaker(repo, tightBreaker())

	got, err := wrapped.Query(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, runs, got)

	n, err := wrapped.Count(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func testCatalog() model.Catalog {
	return model.Catalog{
		Recipes: []model.Recipe{{
			ID:          "r1",
			Name:        "Rice bowl",
			Nutrients:   map[string]float64{"calories": 500, "protein": 20},
			Ingredients: []model.RecipeIngredient{{IngredientID: "rice", Proportion: 0.5}},
		}},
		Ingredients: []model.Ingredient{{ID: "rice", Name: "rice", UnitPrice: 200}},
	}
}
