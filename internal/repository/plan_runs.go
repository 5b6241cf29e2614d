package repository

import (
	"context"
	"time"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlanRunDocument is the stored form of one planning request.
type PlanRunDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	RequestID       string             `bson:"request_id,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	CatalogVersion  int                `bson:"catalog_version"`
	Fingerprint     string             `bson:"fingerprint"`
	Preferences     model.Preferences  `bson:"preferences"`
	Status          string             `bson:"status,omitempty"`
	ChosenRecipeIDs []string           `bson:"chosen_recipe_ids,omitempty"`
	Objective       float64            `bson:"objective"`
	Spend           float64            `bson:"spend"`
	Nodes           int64              `bson:"nodes"`
	DurationMS      int64              `bson:"duration_ms"`
	Cached          bool               `bson:"cached"`
	Error           string             `bson:"error,omitempty"`
}

// PlanRunQueryOptions filters plan run queries.
type PlanRunQueryOptions struct {
	RequestID string
	Status    string
	Since     *time.Time
	Limit     int
	Skip      int
}

func (o PlanRunQueryOptions) filter() bson.M {
	filter := bson.M{}
	if o.RequestID != "" {
		filter["request_id"] = o.RequestID
	}
	if o.Status != "" {
		filter["status"] = o.Status
	}
	if o.Since != nil {
		filter["created_at"] = bson.M{"$gte": *o.Since}
	}
	return filter
}

// PlanRunsRepository stores plan run history.
type PlanRunsRepository struct {
	collection *mongo.Collection
}

// NewPlanRunsRepository creates a new plan runs repository.
func NewPlanRunsRepository(db *MongoDB) *PlanRunsRepository {
	return &PlanRunsRepository{
		collection: db.PlanRuns,
	}
}

func prepare(run *PlanRunDocument) {
	if run.ID.IsZero() {
		run.ID = primitive.NewObjectID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
}

// Create inserts one plan run.
func (r *PlanRunsRepository) Create(ctx context.Context, run *PlanRunDocument) error {
	prepare(run)
	_, err := r.collection.InsertOne(ctx, run)
	return err
}

// CreateMany inserts plan runs in bulk.
func (r *PlanRunsRepository) CreateMany(ctx context.Context, runs []*PlanRunDocument) error {
	if len(runs) == 0 {
		return nil
	}

	docs := make([]interface{}, len(runs))
	for i, run := range runs {
		prepare(run)
		docs[i] = run
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns plan runs matching opts, newest first.
func (r *PlanRunsRepository) Query(ctx context.Context, opts PlanRunQueryOptions) ([]*PlanRunDocument, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	runs := []*PlanRunDocument{}
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// Count returns the number of plan runs matching opts.
func (r *PlanRunsRepository) Count(ctx context.Context, opts PlanRunQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
