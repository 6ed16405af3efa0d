package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tintuc/newsapi/internal/cache"
	"github.com/tintuc/newsapi/internal/config"
	"github.com/tintuc/newsapi/internal/middleware"
	"github.com/tintuc/newsapi/internal/publish"
	"github.com/tintuc/newsapi/internal/repository"
	"github.com/tintuc/newsapi/internal/upload"
)

// Handlers carries the collaborators every endpoint may need.
type Handlers struct {
	cfg        *config.Config
	articles   repository.ArticleRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	cache      cache.Cache
	uploads    upload.Store
	publisher  *publish.Publisher
	auth       *middleware.Auth
	validator  *middleware.Validator
}

// Deps bundles the constructor arguments for Handlers.
type Deps struct {
	Config     *config.Config
	Articles   repository.ArticleRepository
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Cache      cache.Cache
	Uploads    upload.Store
	Publisher  *publish.Publisher
	Auth       *middleware.Auth
}

func NewHandlers(deps Deps) *Handlers {
	return &Handlers{
		cfg:        deps.Config,
		articles:   deps.Articles,
		users:      deps.Users,
		categories: deps.Categories,
		cache:      deps.Cache,
		uploads:    deps.Uploads,
		publisher:  deps.Publisher,
		auth:       deps.Auth,
		validator:  middleware.NewValidator(),
	}
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}
