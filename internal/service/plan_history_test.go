package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/mocks"
	"github.com/guttosm/meal-planner-service/internal/repository"
	"github.com/guttosm/meal-planner-service/internal/service"
)

func TestPlanHistory_Save(t *testing.T) {
	run := model.PlanRun{RequestID: "req-1", Status: model.StatusOptimal, ChosenRecipeIDs: []string{"r1"}, Objective: 12.5}

	tests := []struct {
		name      string
		runs      []model.PlanRun
		setupMock func(*mocks.MockPlanRunsRepositoryInterface)
		wantErr   bool
	}{
		{
			name:      "nothing to save",
			runs:      nil,
			setupMock: func(*mocks.MockPlanRunsRepositoryInterface) {},
		},
		{
			name: "single run uses insert",
			runs: []model.PlanRun{run},
			setupMock: func(m *mocks.MockPlanRunsRepositoryInterface) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(doc *repository.PlanRunDocument) bool {
					return doc.RequestID == "req-1" && doc.Status == "optimal" && doc.Objective == 12.5
				})).Return(nil)
			},
		},
		{
			name: "batch uses bulk insert",
			runs: []model.PlanRun{run, run},
			setupMock: func(m *mocks.MockPlanRunsRepositoryInterface) {
				m.On("CreateMany", mock.Anything, mock.MatchedBy(func(docs []*repository.PlanRunDocument) bool {
					return len(docs) == 2
				})).Return(nil)
			},
		},
		{
			name: "repository error",
			runs: []model.PlanRun{run},
			setupMock: func(m *mocks.MockPlanRunsRepositoryInterface) {
				m.On("Create", mock.Anything, mock.Anything).Return(errors.New("write failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPlanRunsRepositoryInterface)
			tt.setupMock(repo)

			err := service.NewPlanHistory(repo).Save(context.Background(), tt.runs)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPlanHistory_Recent(t *testing.T) {
	id := primitive.NewObjectID()
	created := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	since := created.Add(-time.Hour)

	repo := new(mocks.MockPlanRunsRepositoryInterface)
	opts := repository.PlanRunQueryOptions{Status: "best_effort", Since: &since, Limit: 20}
	repo.On("Query", mock.Anything, opts).Return([]*repository.PlanRunDocument{{
		ID:             id,
		RequestID:      "req-9",
		CreatedAt:      created,
		CatalogVersion: 4,
		Status:         "best_effort",
		Nodes:          420,
		Cached:         false,
	}}, nil)
	repo.On("Count", mock.Anything, opts).Return(int64(1), nil)

	history := service.NewPlanHistory(repo)
	q := model.PlanRunQuery{Status: model.StatusBestEffort, Since: &since, Limit: 20}

	runs, err := history.Recent(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.PlanRun{
		ID:             id.Hex(),
		RequestID:      "req-9",
		CreatedAt:      created,
		CatalogVersion: 4,
		Status:         model.StatusBestEffort,
		Nodes:          420,
	}, runs[0])

	n, err := history.Count(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPlanHistory_NoRepository(t *testing.T) {
	history := service.NewPlanHistory(nil)

	assert.ErrorIs(t, history.Save(context.Background(), []model.PlanRun{{}}), service.ErrRepositoryNotConfigured)
	_, err := history.Recent(context.Background(), model.PlanRunQuery{})
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
	_, err = history.Count(context.Background(), model.PlanRunQuery{})
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
}
