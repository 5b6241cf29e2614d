package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrVersionConflict is returned when two catalogs race for the same version.
var ErrVersionConflict = errors.New("catalog version conflict")

// CatalogDocument is one stored catalog version.
type CatalogDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Catalog   model.Catalog      `bson:"catalog" json:"catalog"`
	Active    bool               `bson:"active" json:"active"`
	Version   int                `bson:"version" json:"version"`
	Recipes   int                `bson:"recipe_count" json:"recipe_count"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	CreatedBy string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// CatalogsRepository stores versioned catalogs; at most one is active.
type CatalogsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewCatalogsRepository creates a new catalogs repository.
func NewCatalogsRepository(db *MongoDB) *CatalogsRepository {
	return &CatalogsRepository{
		collection: db.Catalogs,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// GetActive returns the active catalog, or nil when none was stored yet.
func (r *CatalogsRepository) GetActive(ctx context.Context) (*CatalogDocument, error) {
	return r.findOne(ctx, bson.M{"active": true})
}

// GetByVersion returns the catalog stored under version, or nil.
func (r *CatalogsRepository) GetByVersion(ctx context.Context, version int) (*CatalogDocument, error) {
	return r.findOne(ctx, bson.M{"version": version})
}

func (r *CatalogsRepository) findOne(ctx context.Context, filter bson.M) (*CatalogDocument, error) {
	var doc CatalogDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create stores catalog as the next version and makes it the active one.
func (r *CatalogsRepository) Create(ctx context.Context, name string, catalog model.Catalog, createdBy string) (*CatalogDocument, error) {
	latest, err := r.latestVersion(ctx)
	if err != nil {
		return nil, err
	}

	now := r.now()
	doc := CatalogDocument{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Catalog:   catalog,
		Active:    false,
		Version:   latest + 1,
		Recipes:   len(catalog.Recipes),
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	// Insert first so a failed insert never leaves the store without an active catalog.
	if _, err := r.collection.UpdateMany(ctx,
		bson.M{"active": true, "_id": bson.M{"$ne": doc.ID}},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	); err != nil {
		return nil, err
	}
	if _, err := r.collection.UpdateByID(ctx, doc.ID, bson.M{"$set": bson.M{"active": true}}); err != nil {
		return nil, err
	}

	doc.Active = true
	return &doc, nil
}

func (r *CatalogsRepository) latestVersion(ctx context.Context) (int, error) {
	var doc struct {
		Version int `bson:"version"`
	}
	err := r.collection.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}).SetProjection(bson.M{"version": 1}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	return doc.Version, err
}

// List returns catalog versions newest first, without the catalog bodies.
func (r *CatalogsRepository) List(ctx context.Context, limit int) ([]CatalogDocument, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetProjection(bson.M{"catalog": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	docs := []CatalogDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
