// Package repository persists articles, users and categories in MongoDB.
// All methods return taxonomy errors from internal/errs where a caller
// is expected to branch on the failure kind.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tintuc/newsapi/internal/models"
)

// ArticleRepository is the persistence contract the content pipeline and
// the related-posts ranker depend on.
type ArticleRepository interface {
	// FindBySlug returns the article with the given slugId, or a
	// NotFound error.
	FindBySlug(ctx context.Context, slugID string) (*models.Article, error)

	// FindCandidates returns up to limit articles ordered newest first,
	// excluding the given slugId. This is the ranker's candidate pool.
	FindCandidates(ctx context.Context, excludeSlug string, limit int64) ([]models.Article, error)

	// FindRecent returns the limit most recently created articles,
	// excluding the given slugId.
	FindRecent(ctx context.Context, excludeSlug string, limit int64) ([]models.Article, error)

	// Create stores a new article. A duplicate slugId yields a Conflict
	// error; the uniqueness race is settled by the storage index, not
	// pre-checked here.
	Create(ctx context.Context, article *models.Article) error

	// List returns one page of articles, newest first.
	List(ctx context.Context, page, pageSize int64) ([]models.Article, error)

	// Count returns the total number of stored articles.
	Count(ctx context.Context) (int64, error)

	// FindByCategory returns the newest articles tagged with the given
	// category. Slug matches the categories array; label matches the
	// legacy scalar field, which stored the human label.
	FindByCategory(ctx context.Context, slug, label string, limit int64) ([]models.Article, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// FindByLogin matches an active, not-deleted user by username or
	// email. The password hash is populated.
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	// Taken reports whether another user (excluding excludeID, which may
	// be the zero ObjectID) already holds the given field value.
	Taken(ctx context.Context, field, value string, excludeID primitive.ObjectID) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
}

// CategoryRepository persists site-wide categories.
type CategoryRepository interface {
	// List returns all categories, defaults first, then oldest first.
	// Missing seed categories are inserted before listing.
	List(ctx context.Context) ([]models.StoredCategory, error)
	FindByValue(ctx context.Context, value string) (*models.StoredCategory, error)
	Create(ctx context.Context, cat *models.StoredCategory) error
}
