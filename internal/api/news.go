package api

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tintuc/newsapi/internal/cache"
	"github.com/tintuc/newsapi/internal/content"
	"github.com/tintuc/newsapi/internal/errs"
	"github.com/tintuc/newsapi/internal/logger"
	"github.com/tintuc/newsapi/internal/models"
	"github.com/tintuc/newsapi/internal/related"
	"github.com/tintuc/newsapi/internal/upload"
)

const (
	newsPageSize   = 12
	candidateLimit = 50
	homepageLatest = 5
	homepagePerCat = 4
	maxDescription = 300
)

// UploadNews handles POST /api/v1/news/upload. The multipart form
// carries title, description, author, JSON-encoded blocks, categories
// and targetSites, plus the thumbnail and block image files.
func (h *Handlers) UploadNews(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return errs.Validationf("dữ liệu upload không hợp lệ")
	}

	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	author := strings.TrimSpace(c.FormValue("author"))
	if author == "" {
		author = "Admin"
	}

	var rawBlocks []any
	if blocksJSON := c.FormValue("blocks"); blocksJSON != "" {
		if err := json.Unmarshal([]byte(blocksJSON), &rawBlocks); err != nil {
			return errs.Validationf("blocks data không hợp lệ")
		}
	}

	var rawCategories any
	if categoriesJSON := c.FormValue("categories"); categoriesJSON != "" {
		if err := json.Unmarshal([]byte(categoriesJSON), &rawCategories); err != nil {
			return errs.Validationf("categories data không hợp lệ")
		}
	}

	var targetSites []string
	if sitesJSON := c.FormValue("targetSites"); sitesJSON != "" {
		if err := json.Unmarshal([]byte(sitesJSON), &targetSites); err != nil {
			return errs.Validationf("target sites data không hợp lệ")
		}
	}

	thumbnails := form.File["thumbnail"]
	if title == "" || len(thumbnails) == 0 || len(rawBlocks) == 0 {
		return errs.Validationf("title, thumbnail và blocks là bắt buộc")
	}
	if len(description) > maxDescription {
		return errs.Validationf("mô tả không được vượt quá %d ký tự", maxDescription)
	}

	categories, invalid := content.NormalizeCategories(rawCategories)
	if invalid {
		return errs.Validationf("danh sách chuyên mục không hợp lệ")
	}
	categories = content.WithDefaultCategory(categories)

	// All validation that can fail without touching storage happens
	// before any upload or write.
	thumbnailURL, err := upload.SaveOne(c.Context(), h.uploads, thumbnails[0])
	if err != nil {
		return err
	}
	lookup, err := upload.SaveAll(c.Context(), h.uploads, form.File["blockImages"])
	if err != nil {
		return err
	}

	blocks := content.NormalizeBlocks(rawBlocks, lookup)
	if err := content.ValidateBlocks(blocks); err != nil {
		return err
	}

	article := &models.Article{
		Title:       title,
		Description: description,
		SlugID:      content.Slugify(title),
		Thumbnail:   thumbnailURL,
		Content:     blocks,
		Categories:  categories,
		Author:      author,
		TargetSites: targetSites,
	}

	if err := h.articles.Create(c.Context(), article); err != nil {
		return err
	}

	h.invalidateNewsCache(c.Context())

	// Delivery to target sites runs detached from the request.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.cfg.PublishTimeout)
		defer cancel()
		h.publisher.PublishAll(ctx, article)
	}()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Đăng tin tức thành công",
		"data": fiber.Map{
			"id":          article.ID,
			"title":       article.Title,
			"slugId":      article.SlugID,
			"thumbnail":   article.Thumbnail,
			"categories":  article.Categories,
			"author":      article.Author,
			"targetSites": article.TargetSites,
			"createdAt":   article.CreatedAt,
		},
	})
}

// GetNews handles GET /api/v1/news with page-based pagination.
func (h *Handlers) GetNews(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if page < 1 {
		page = 1
	}

	cacheKey := "news:page:" + strconv.FormatInt(page, 10)
	if cached := h.cachedJSON(c, cacheKey); cached {
		return nil
	}

	total, err := h.articles.Count(c.Context())
	if err != nil {
		return err
	}
	articles, err := h.articles.List(c.Context(), page, newsPageSize)
	if err != nil {
		return err
	}

	totalPages := (total + newsPageSize - 1) / newsPageSize
	payload := fiber.Map{
		"success": true,
		"message": "Lấy danh sách tin tức thành công",
		"data":    articles,
		"pagination": fiber.Map{
			"totalItems":  total,
			"currentPage": page,
			"totalPages":  totalPages,
			"pageSize":    newsPageSize,
		},
	}

	h.storeJSON(c.Context(), cacheKey, payload)
	return c.JSON(payload)
}

// GetDetailNews handles GET /api/v1/news/:id where :id is the slugId.
func (h *Handlers) GetDetailNews(c *fiber.Ctx) error {
	article, err := h.articles.FindBySlug(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Get success",
		"data":    article,
	})
}

// GetRelatedNews handles GET /api/v1/news/:id/related. The result is
// cached because it only changes when new articles are published.
func (h *Handlers) GetRelatedNews(c *fiber.Ctx) error {
	slugID := c.Params("id")

	cacheKey := "related:" + slugID
	if cached := h.cachedJSON(c, cacheKey); cached {
		return nil
	}

	article, err := h.articles.FindBySlug(c.Context(), slugID)
	if err != nil {
		return err
	}

	pool, err := h.articles.FindCandidates(c.Context(), slugID, candidateLimit)
	if err != nil {
		return err
	}

	ranked := related.Rank(article, pool)
	payload := fiber.Map{
		"success": true,
		"message": "Lấy tin liên quan thành công",
		"data":    ranked,
	}

	h.storeJSON(c.Context(), cacheKey, payload)
	return c.JSON(payload)
}

// GetHomepageNews handles GET /api/v1/news/home-page: the latest
// articles overall plus the latest per category.
func (h *Handlers) GetHomepageNews(c *fiber.Ctx) error {
	cacheKey := "news:home-page"
	if cached := h.cachedJSON(c, cacheKey); cached {
		return nil
	}

	latest, err := h.articles.FindRecent(c.Context(), "", homepageLatest)
	if err != nil {
		return err
	}

	cats, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}

	byCategory := make(map[string][]models.Article, len(cats))
	for _, cat := range cats {
		articles, err := h.articles.FindByCategory(c.Context(), cat.Value, cat.Label, homepagePerCat)
		if err != nil {
			return err
		}
		if len(articles) > 0 {
			byCategory[cat.Value] = articles
		}
	}

	payload := fiber.Map{
		"success": true,
		"message": "Lấy tin trang chủ thành công",
		"data": fiber.Map{
			"latest":     latest,
			"byCategory": byCategory,
		},
	}

	h.storeJSON(c.Context(), cacheKey, payload)
	return c.JSON(payload)
}

// cachedJSON serves a cached payload if present, reporting whether the
// response was written. Cache failures fall through to a fresh render.
func (h *Handlers) cachedJSON(c *fiber.Ctx, key string) bool {
	data, err := h.cache.Get(c.Context(), key)
	if err != nil {
		if err != cache.ErrMiss {
			logger.Get().Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	_ = c.Send(data)
	return true
}

func (h *Handlers) storeJSON(ctx context.Context, key string, payload fiber.Map) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, data, h.cfg.CacheTTL); err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

func (h *Handlers) invalidateNewsCache(ctx context.Context) {
	for _, pattern := range []string{"news:*", "related:*"} {
		if err := h.cache.Invalidate(ctx, pattern); err != nil {
			logger.Get().Warn().Err(err).Str("pattern", pattern).Msg("Cache invalidation failed")
		}
	}
}
