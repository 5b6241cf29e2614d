package service

import (
	"context"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"github.com/guttosm/meal-planner-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHistory stores and queries plan runs.
type PlanHistory interface {
	Save(ctx context.Context, runs []model.PlanRun) error
	Recent(ctx context.Context, q model.PlanRunQuery) ([]model.PlanRun, error)
	Count(ctx context.Context, q model.PlanRunQuery) (int64, error)
}

// PlanHistoryImpl implements PlanHistory over a plan runs repository.
type PlanHistoryImpl struct {
	repo repository.PlanRunsRepositoryInterface
}

// NewPlanHistory creates a plan history service.
func NewPlanHistory(repo repository.PlanRunsRepositoryInterface) PlanHistory {
	return &PlanHistoryImpl{repo: repo}
}

// Save stores runs, using a single insert for one run.
func (s *PlanHistoryImpl) Save(ctx context.Context, runs []model.PlanRun) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	switch len(runs) {
	case 0:
		return nil
	case 1:
		return s.repo.Create(ctx, runToDocument(runs[0]))
	}
	docs := make([]*repository.PlanRunDocument, len(runs))
	for i, run := range runs {
		docs[i] = runToDocument(run)
	}
	return s.repo.CreateMany(ctx, docs)
}

// Recent returns runs matching q, newest first.
func (s *PlanHistoryImpl) Recent(ctx context.Context, q model.PlanRunQuery) ([]model.PlanRun, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	docs, err := s.repo.Query(ctx, queryOptions(q))
	if err != nil {
		return nil, err
	}
	runs := make([]model.PlanRun, len(docs))
	for i, doc := range docs {
		runs[i] = documentToRun(doc)
	}
	return runs, nil
}

// Count returns the number of runs matching q.
func (s *PlanHistoryImpl) Count(ctx context.Context, q model.PlanRunQuery) (int64, error) {
	if s.repo == nil {
		return 0, ErrRepositoryNotConfigured
	}
	return s.repo.Count(ctx, queryOptions(q))
}

func queryOptions(q model.PlanRunQuery) repository.PlanRunQueryOptions {
	return repository.PlanRunQueryOptions{
		RequestID: q.RequestID,
		Status:    string(q.Status),
		Since:     q.Since,
		Limit:     q.Limit,
		Skip:      q.Skip,
	}
}

func runToDocument(run model.PlanRun) *repository.PlanRunDocument {
	doc := &repository.PlanRunDocument{
		RequestID:       run.RequestID,
		CreatedAt:       run.CreatedAt,
		CatalogVersion:  run.CatalogVersion,
		Fingerprint:     run.Fingerprint,
		Preferences:     run.Preferences,
		Status:          string(run.Status),
		ChosenRecipeIDs: run.ChosenRecipeIDs,
		Objective:       run.Objective,
		Spend:           run.Spend,
		Nodes:           run.Nodes,
		DurationMS:      run.DurationMS,
		Cached:          run.Cached,
		Error:           run.Error,
	}
	if id, err := primitive.ObjectIDFromHex(run.ID); err == nil {
		doc.ID = id
	}
	return doc
}

func documentToRun(doc *repository.PlanRunDocument) model.PlanRun {
	return model.PlanRun{
		ID:              doc.ID.Hex(),
		RequestID:       doc.RequestID,
		CreatedAt:       doc.CreatedAt,
		CatalogVersion:  doc.CatalogVersion,
		Fingerprint:     doc.Fingerprint,
		Preferences:     doc.Preferences,
		Status:          model.Status(doc.Status),
		ChosenRecipeIDs: doc.ChosenRecipeIDs,
		Objective:       doc.Objective,
		Spend:           doc.Spend,
		Nodes:           doc.Nodes,
		DurationMS:      doc.DurationMS,
		Cached:          doc.Cached,
		Error:           doc.Error,
	}
}
