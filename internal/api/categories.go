package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tintuc/newsapi/internal/content"
	"github.com/tintuc/newsapi/internal/errs"
	"github.com/tintuc/newsapi/internal/models"
)

// GetCategories handles GET /api/v1/categories. Built-in categories are
// seeded before listing so a fresh database still serves the defaults.
func (h *Handlers) GetCategories(c *fiber.Ctx) error {
	cats, err := h.categories.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Lấy danh sách chuyên mục thành công.",
		"data":    cats,
	})
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateCategory handles POST /api/v1/categories.
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var req createCategoryRequest
	if err := h.validator.ParseAndValidate(c, &req); err != nil {
		return err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return errs.Validationf("vui lòng nhập tên chuyên mục")
	}

	value := content.Slugify(name)
	if value == "" {
		return errs.Validationf("tên chuyên mục không hợp lệ")
	}

	if _, err := h.categories.FindByValue(c.Context(), value); err == nil {
		return errs.Conflictf("Chuyên mục đã tồn tại.")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	cat := &models.StoredCategory{
		Value:     value,
		Label:     name,
		IsDefault: false,
	}
	if err := h.categories.Create(c.Context(), cat); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Tạo chuyên mục thành công.",
		"data": fiber.Map{
			"value":     cat.Value,
			"label":     cat.Label,
			"isDefault": cat.IsDefault,
		},
	})
}
