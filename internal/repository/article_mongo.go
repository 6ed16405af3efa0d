package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tintuc/newsapi/internal/errs"
	"github.com/tintuc/newsapi/internal/models"
)

// MongoArticleRepository implements ArticleRepository on MongoDB.
type MongoArticleRepository struct {
	coll *mongo.Collection
}

func NewMongoArticleRepository(db *mongo.Database) *MongoArticleRepository {
	return &MongoArticleRepository{coll: db.Collection(articlesCollection)}
}

func (r *MongoArticleRepository) FindBySlug(ctx context.Context, slugID string) (*models.Article, error) {
	var article models.Article
	err := r.coll.FindOne(ctx, bson.M{"slugId": slugID}).Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("không tìm thấy bài viết %q", slugID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find article by slug: %w", err)
	}
	return &article, nil
}

func (r *MongoArticleRepository) FindCandidates(ctx context.Context, excludeSlug string, limit int64) ([]models.Article, error) {
	return r.findSorted(ctx, bson.M{"slugId": bson.M{"$ne": excludeSlug}}, limit, 0)
}

func (r *MongoArticleRepository) FindRecent(ctx context.Context, excludeSlug string, limit int64) ([]models.Article, error) {
	return r.findSorted(ctx, bson.M{"slugId": bson.M{"$ne": excludeSlug}}, limit, 0)
}

func (r *MongoArticleRepository) Create(ctx context.Context, article *models.Article) error {
	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, article)
	if mongo.IsDuplicateKeyError(err) {
		return errs.Conflictf("bài viết với slug %q đã tồn tại", article.SlugID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		article.ID = id
	}
	return nil
}

func (r *MongoArticleRepository) List(ctx context.Context, page, pageSize int64) ([]models.Article, error) {
	skip := (page - 1) * pageSize
	return r.findSorted(ctx, bson.M{}, pageSize, skip)
}

func (r *MongoArticleRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

func (r *MongoArticleRepository) FindByCategory(ctx context.Context, slug, label string, limit int64) ([]models.Article, error) {
	return r.findSorted(ctx, categoryFilter(slug, label), limit, 0)
}

// categoryFilter matches both category shapes. Current documents carry
// a categories array keyed by slug; documents written before that carry
// a single scalar field holding the human label.
func categoryFilter(slug, label string) bson.M {
	or := []bson.M{{"categories.slug": slug}}
	if label != "" {
		or = append(or, bson.M{"category": label})
	}
	return bson.M{"$or": or}
}

func (r *MongoArticleRepository) findSorted(ctx context.Context, filter bson.M, limit, skip int64) ([]models.Article, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []models.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	return articles, nil
}
