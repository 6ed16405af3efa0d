// Package related ranks candidate articles by how related they are to a
// target article. Ranking runs as a cascade of tiers: slug-root
// similarity first, category overlap when that finds nothing, and a
// recency fallback that always produces a result.
package related

import (
	"regexp"
	"sort"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/tintuc/newsapi/internal/content"
	"github.com/tintuc/newsapi/internal/models"
)

const (
	// maxPool caps how many candidates are considered.
	maxPool = 50
	// slugScoreThreshold keeps a candidate in the similarity tier.
	slugScoreThreshold = 0.5
	// categoryScore is awarded for sharing at least one category slug.
	categoryScore = 0.3
	// recentLimit is the size of the recency fallback result.
	recentLimit = 3
)

// seriesSuffix matches the "part N of a series" marker on a slug, e.g.
// "tin-bao-so-3". The marker is ignored when comparing slugs.
var seriesSuffix = regexp.MustCompile(`-so-\d+$`)

// SlugRoot strips the trailing series marker from a slug.
func SlugRoot(slugID string) string {
	return seriesSuffix.ReplaceAllString(slugID, "")
}

type scoredArticle struct {
	article    models.Article
	slugScore  float64
	totalScore float64
	overlap    bool
}

// tier selects a subset of the scored pool. The cascade returns the
// first tier with a non-empty result.
type tier func(current *models.Article, pool []scoredArticle) []scoredArticle

// Rank orders the candidate pool from most to least related to current.
// The recency fallback guarantees a result whenever other articles
// exist.
func Rank(current *models.Article, candidates []models.Article) []models.Article {
	pool := score(current, candidates)

	for _, t := range []tier{slugSimilarityTier, categoryOverlapTier} {
		if matched := t(current, pool); len(matched) > 0 {
			sortByScore(matched)
			return articles(matched)
		}
	}
	return articles(recencyTier(current, pool))
}

// score computes slug and category scores for every candidate, excluding
// the current article and capping the pool.
func score(current *models.Article, candidates []models.Article) []scoredArticle {
	dice := metrics.NewSorensenDice()
	root := SlugRoot(current.SlugID)
	currentSlugs := categorySlugSet(current)

	pool := make([]scoredArticle, 0, len(candidates))
	for _, c := range candidates {
		if c.SlugID == current.SlugID {
			continue
		}
		if len(pool) == maxPool {
			break
		}
		s := scoredArticle{
			article:   c,
			slugScore: strutil.Similarity(root, SlugRoot(c.SlugID), dice),
		}
		s.totalScore = s.slugScore
		if sharesCategory(currentSlugs, &c) {
			s.overlap = true
			s.totalScore += categoryScore
		}
		pool = append(pool, s)
	}
	return pool
}

func slugSimilarityTier(_ *models.Article, pool []scoredArticle) []scoredArticle {
	var matched []scoredArticle
	for _, s := range pool {
		if s.slugScore >= slugScoreThreshold {
			matched = append(matched, s)
		}
	}
	return matched
}

func categoryOverlapTier(current *models.Article, pool []scoredArticle) []scoredArticle {
	if len(categorySlugSet(current)) == 0 {
		return nil
	}
	var matched []scoredArticle
	for _, s := range pool {
		// Overlap alone scores exactly categoryScore and still counts.
		if s.overlap && s.totalScore >= categoryScore {
			matched = append(matched, s)
		}
	}
	return matched
}

// recencyTier returns the most recent other articles regardless of
// score. Unlike the tiers above it never filters, so it may return
// fewer than recentLimit entries only when the pool itself is smaller.
func recencyTier(_ *models.Article, pool []scoredArticle) []scoredArticle {
	recent := make([]scoredArticle, len(pool))
	copy(recent, pool)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].article.CreatedAt.After(recent[j].article.CreatedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return recent
}

func sortByScore(matched []scoredArticle) {
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].slugScore != matched[j].slugScore {
			return matched[i].slugScore > matched[j].slugScore
		}
		return matched[i].totalScore > matched[j].totalScore
	})
}

func articles(scored []scoredArticle) []models.Article {
	result := make([]models.Article, len(scored))
	for i, s := range scored {
		result[i] = s.article
	}
	return result
}

// categorySlugSet flattens an article's categories into a slug set.
// Documents written before categories became an array store a single
// scalar label; it is slugified into the same representation.
func categorySlugSet(a *models.Article) map[string]struct{} {
	slugs := make(map[string]struct{}, len(a.Categories)+1)
	for _, c := range a.Categories {
		if c.Slug != "" {
			slugs[c.Slug] = struct{}{}
		}
	}
	if a.Category != "" {
		if s := content.Slugify(a.Category); s != "" {
			slugs[s] = struct{}{}
		}
	}
	return slugs
}

func sharesCategory(current map[string]struct{}, candidate *models.Article) bool {
	for slug := range categorySlugSet(candidate) {
		if _, ok := current[slug]; ok {
			return true
		}
	}
	return false
}
