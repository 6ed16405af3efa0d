package content

import (
	"strings"
	"testing"

	"github.com/tintuc/newsapi/internal/models"
)

func TestSlugifyVietnamese(t *testing.T) {
	cases := map[string]string{
		"Sống Xanh":     "song-xanh",
		"Tin tổng hợp":  "tin-tong-hop",
		"Được quan tâm": "duoc-quan-tam",
		"  Khỏe  ":      "khoe",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeCategoriesStrings(t *testing.T) {
	cats, invalid := NormalizeCategories([]any{"Sống Xanh", "Kinh tế"})
	if invalid {
		t.Fatal("invalid = true for valid entries")
	}
	if len(cats) != 2 {
		t.Fatalf("len = %d, want 2", len(cats))
	}
	if cats[0].Value != "Sống Xanh" || cats[0].Slug != "song-xanh" {
		t.Errorf("cats[0] = %+v", cats[0])
	}
}

func TestNormalizeCategoriesDedupe(t *testing.T) {
	// Differing label casing and format still collapse to one slug;
	// the first occurrence wins and duplicates are not invalid.
	cats, invalid := NormalizeCategories([]any{"Sống Xanh", "sống-xanh"})
	if invalid {
		t.Fatal("duplicate slug flagged as invalid")
	}
	if len(cats) != 1 {
		t.Fatalf("len = %d, want 1", len(cats))
	}
	if cats[0].Value != "Sống Xanh" {
		t.Errorf("first occurrence should win, got %+v", cats[0])
	}
}

func TestNormalizeCategoriesInvalidEntries(t *testing.T) {
	for _, entry := range []any{
		float64(7),
		nil,
		"",
		"   ",
		strings.Repeat("a", 129),
	} {
		_, invalid := NormalizeCategories([]any{entry})
		if !invalid {
			t.Errorf("entry %#v should set invalid", entry)
		}
	}
}

func TestNormalizeCategoriesObjects(t *testing.T) {
	cats, invalid := NormalizeCategories([]any{
		map[string]any{"label": "Kinh tế"},
		map[string]any{"name": "Thể thao"},
		map[string]any{"slug": "giai-tri"},
	})
	if invalid {
		t.Fatal("invalid = true for valid object entries")
	}
	if len(cats) != 3 {
		t.Fatalf("len = %d, want 3", len(cats))
	}
	if cats[0].Slug != "kinh-te" {
		t.Errorf("cats[0].Slug = %q", cats[0].Slug)
	}
	// Slug-only entry uses the slug as its label.
	if cats[2].Value != "giai-tri" || cats[2].Slug != "giai-tri" {
		t.Errorf("cats[2] = %+v", cats[2])
	}

	_, invalid = NormalizeCategories([]any{map[string]any{"other": "x"}})
	if !invalid {
		t.Error("object without label or slug should set invalid")
	}
}

func TestNormalizeCategoriesNonArray(t *testing.T) {
	cats, invalid := NormalizeCategories("not an array")
	if invalid {
		t.Error("non-array input is not an error")
	}
	if len(cats) != 0 {
		t.Errorf("len = %d, want 0", len(cats))
	}
}

func TestWithDefaultCategory(t *testing.T) {
	cats := WithDefaultCategory(nil)
	if len(cats) != 1 || cats[0] != models.DefaultCategory {
		t.Errorf("default not substituted: %+v", cats)
	}

	given := []models.Category{{Value: "Chất", Slug: "chat"}}
	if got := WithDefaultCategory(given); len(got) != 1 || got[0].Slug != "chat" {
		t.Errorf("non-empty list replaced: %+v", got)
	}
}
