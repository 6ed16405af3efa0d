package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tintuc/newsapi/internal/errs"
	"github.com/tintuc/newsapi/internal/models"
)

// MongoCategoryRepository implements CategoryRepository on MongoDB.
type MongoCategoryRepository struct {
	coll *mongo.Collection
}

func NewMongoCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{coll: db.Collection(categoriesCollection)}
}

func (r *MongoCategoryRepository) List(ctx context.Context) ([]models.StoredCategory, error) {
	if err := r.ensureSeeds(ctx); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "isDefault", Value: -1},
		{Key: "createdAt", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	var cats []models.StoredCategory
	if err := cursor.All(ctx, &cats); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return cats, nil
}

func (r *MongoCategoryRepository) FindByValue(ctx context.Context, value string) (*models.StoredCategory, error) {
	var cat models.StoredCategory
	err := r.coll.FindOne(ctx, bson.M{"value": value}).Decode(&cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("không tìm thấy chuyên mục %q", value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &cat, nil
}

func (r *MongoCategoryRepository) Create(ctx context.Context, cat *models.StoredCategory) error {
	cat.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, cat)
	if mongo.IsDuplicateKeyError(err) {
		return errs.Conflictf("chuyên mục đã tồn tại")
	}
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// ensureSeeds inserts the built-in categories that are not present yet.
// Races between concurrent listings are absorbed by the unique index on
// value.
func (r *MongoCategoryRepository) ensureSeeds(ctx context.Context) error {
	cursor, err := r.coll.Find(ctx, bson.M{"isDefault": true}, options.Find().SetProjection(bson.M{"value": 1}))
	if err != nil {
		return fmt.Errorf("failed to query default categories: %w", err)
	}
	defer cursor.Close(ctx)

	existing := make(map[string]struct{})
	var docs []models.StoredCategory
	if err := cursor.All(ctx, &docs); err != nil {
		return fmt.Errorf("failed to decode default categories: %w", err)
	}
	for _, doc := range docs {
		existing[doc.Value] = struct{}{}
	}

	var missing []any
	for _, seed := range models.SeedCategories {
		if _, ok := existing[seed.Value]; ok {
			continue
		}
		seed.CreatedAt = time.Now()
		missing = append(missing, seed)
	}
	if len(missing) == 0 {
		return nil
	}

	_, err = r.coll.InsertMany(ctx, missing, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}
