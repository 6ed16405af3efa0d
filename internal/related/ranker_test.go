package related

import (
	"testing"
	"time"

	"github.com/tintuc/newsapi/internal/models"
)

func TestSlugRoot(t *testing.T) {
	cases := map[string]string{
		"tin-abc-so-2":     "tin-abc",
		"tin-abc-so-5":     "tin-abc",
		"tin-abc":          "tin-abc",
		"so-3":             "so-3",
		"bao-so-10-do-bo":  "bao-so-10-do-bo",
		"gia-vang-so-2024": "gia-vang",
	}
	for input, want := range cases {
		if got := SlugRoot(input); got != want {
			t.Errorf("SlugRoot(%q) = %q, want %q", input, got, want)
		}
	}

	if SlugRoot("tin-abc-so-2") != SlugRoot("tin-abc-so-5") {
		t.Error("series parts should share a slug root")
	}
}

func article(slug string, cats []models.Category, createdAt time.Time) models.Article {
	return models.Article{SlugID: slug, Categories: cats, CreatedAt: createdAt}
}

var kinhTe = []models.Category{{Value: "Kinh tế", Slug: "kinh-te"}}

func TestRankSlugSimilarityTier(t *testing.T) {
	now := time.Now()
	current := article("gia-vang-hom-nay", kinhTe, now)

	series := article("gia-vang-hom-nay-so-2", nil, now.Add(-time.Hour))
	near := article("gia-vang-hom-qua", nil, now.Add(-2*time.Hour))
	far := article("bong-da-ngoai-hang-anh", kinhTe, now.Add(-3*time.Hour))

	ranked := Rank(&current, []models.Article{far, near, series})

	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2 (similarity tier only)", len(ranked))
	}
	if ranked[0].SlugID != series.SlugID {
		t.Errorf("ranked[0] = %s, want the identical slug root first", ranked[0].SlugID)
	}
	if ranked[1].SlugID != near.SlugID {
		t.Errorf("ranked[1] = %s, want %s", ranked[1].SlugID, near.SlugID)
	}
}

func TestRankTieBreakByCategoryOverlap(t *testing.T) {
	now := time.Now()
	current := article("gia-vang-hom-nay", kinhTe, now)

	// Both candidates share the slug root; only one shares a category,
	// so its total score wins the tie.
	plain := article("gia-vang-hom-nay-so-2", nil, now)
	tagged := article("gia-vang-hom-nay-so-3", kinhTe, now)

	ranked := Rank(&current, []models.Article{plain, tagged})
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].SlugID != tagged.SlugID {
		t.Errorf("ranked[0] = %s, want category overlap to break the tie", ranked[0].SlugID)
	}
}

func TestRankCategoryOverlapTier(t *testing.T) {
	now := time.Now()
	current := article("gia-vang-hom-nay", kinhTe, now)

	overlap := article("thi-truong-chung-khoan-my", kinhTe, now.Add(-time.Hour))
	unrelated := article("xem-phim-cuoi-tuan", nil, now.Add(-2*time.Hour))

	ranked := Rank(&current, []models.Article{unrelated, overlap})

	if len(ranked) != 1 {
		t.Fatalf("len = %d, want 1 (category tier)", len(ranked))
	}
	if ranked[0].SlugID != overlap.SlugID {
		t.Errorf("ranked[0] = %s, want %s", ranked[0].SlugID, overlap.SlugID)
	}
}

func TestRankCategoryOverlapWithoutSlugSimilarity(t *testing.T) {
	now := time.Now()
	current := article("xe-may", kinhTe, now)

	// The only category-sharing candidate has no bigram in common with
	// the current slug, so its score is exactly the overlap bonus. Newer
	// uncategorized articles must not displace it via the fallback.
	overlap := article("bong-da", kinhTe, now.Add(-3*time.Hour))
	newer1 := article("phim-hay-cuoi-tuan", nil, now.Add(-time.Hour))
	newer2 := article("du-lich-he", nil, now.Add(-2*time.Hour))

	ranked := Rank(&current, []models.Article{newer1, newer2, overlap})

	if len(ranked) != 1 {
		t.Fatalf("len = %d, want 1 (overlap alone qualifies)", len(ranked))
	}
	if ranked[0].SlugID != overlap.SlugID {
		t.Errorf("ranked[0] = %s, want %s", ranked[0].SlugID, overlap.SlugID)
	}
}

func TestRankScalarCategoryCompatibility(t *testing.T) {
	now := time.Now()
	current := article("gia-vang-hom-nay", kinhTe, now)

	// Legacy documents store a single scalar category label.
	legacy := article("thi-truong-chung-khoan-my", nil, now.Add(-time.Hour))
	legacy.Category = "Kinh tế"

	ranked := Rank(&current, []models.Article{legacy})
	if len(ranked) != 1 || ranked[0].SlugID != legacy.SlugID {
		t.Errorf("legacy scalar category not matched: %v", ranked)
	}
}

func TestRankRecencyFallback(t *testing.T) {
	now := time.Now()
	current := article("tin-nong", nil, now)

	pool := []models.Article{
		article("du-lich-mua-he", nil, now.Add(-4*time.Hour)),
		article("cong-nghe-moi", nil, now.Add(-1*time.Hour)),
		article("xu-huong-thoi-trang", nil, now.Add(-2*time.Hour)),
		article("mon-an-ngon", nil, now.Add(-3*time.Hour)),
	}

	ranked := Rank(&current, pool)

	if len(ranked) != 3 {
		t.Fatalf("len = %d, want 3 (recency fallback)", len(ranked))
	}
	want := []string{"cong-nghe-moi", "xu-huong-thoi-trang", "mon-an-ngon"}
	for i, slug := range want {
		if ranked[i].SlugID != slug {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].SlugID, slug)
		}
	}
}

func TestRankRecencyFallbackSmallPool(t *testing.T) {
	now := time.Now()
	current := article("tin-nong", nil, now)
	pool := []models.Article{article("du-lich-mua-he", nil, now.Add(-time.Hour))}

	ranked := Rank(&current, pool)
	if len(ranked) != 1 {
		t.Errorf("len = %d, want the whole pool", len(ranked))
	}
}

func TestRankExcludesCurrentArticle(t *testing.T) {
	now := time.Now()
	current := article("tin-nong", nil, now)

	pool := []models.Article{
		article("tin-nong", nil, now.Add(-time.Hour)),
		article("du-lich-mua-he", nil, now.Add(-2*time.Hour)),
	}

	ranked := Rank(&current, pool)
	for _, a := range ranked {
		if a.SlugID == current.SlugID {
			t.Error("current article leaked into its own related list")
		}
	}
}
