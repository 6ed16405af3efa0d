package content

import (
	"strings"

	"github.com/tintuc/newsapi/internal/models"
)

// maxCategoryLabel caps a category label's length.
const maxCategoryLabel = 128

// NormalizeCategories converts a raw category payload into unique
// (label, slug) pairs. Entries may be plain label strings or objects
// carrying label and slug fields. invalid reports whether any entry
// failed normalization; the caller rejects the whole request on it.
// Duplicate slugs keep the first occurrence and are not counted as
// invalid. A non-array payload means "no categories supplied".
func NormalizeCategories(raw any) (normalized []models.Category, invalid bool) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, false
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		cat := normalizeCategory(entry)
		if cat == nil {
			invalid = true
			continue
		}
		if _, dup := seen[cat.Slug]; dup {
			continue
		}
		seen[cat.Slug] = struct{}{}
		normalized = append(normalized, *cat)
	}
	return normalized, invalid
}

// normalizeCategory normalizes one raw entry, or returns nil when the
// entry cannot be turned into a valid category.
func normalizeCategory(entry any) *models.Category {
	switch v := entry.(type) {
	case string:
		label := strings.TrimSpace(v)
		if label == "" || len(label) > maxCategoryLabel {
			return nil
		}
		slug := Slugify(label)
		if slug == "" {
			return nil
		}
		return &models.Category{Value: label, Slug: slug}

	case map[string]any:
		label := firstString(v, "label", "name", "title", "value")
		slug := strings.TrimSpace(stringField(v["slug"]))
		if slug == "" {
			slug = Slugify(label)
		} else {
			slug = Slugify(slug)
		}
		if label == "" && slug == "" {
			return nil
		}
		if label == "" {
			label = slug
		}
		if len(label) > maxCategoryLabel || slug == "" {
			return nil
		}
		return &models.Category{Value: label, Slug: slug}

	default:
		// Numbers, null, nested arrays: no way to derive a label.
		return nil
	}
}

// WithDefaultCategory substitutes the default category when the
// normalized list came out empty without any invalid entry.
func WithDefaultCategory(cats []models.Category) []models.Category {
	if len(cats) == 0 {
		return []models.Category{models.DefaultCategory}
	}
	return cats
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(stringField(obj[key])); s != "" {
			return s
		}
	}
	return ""
}
