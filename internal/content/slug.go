package content

import (
	"github.com/gosimple/slug"
)

// Slugify converts a human-readable label into a lowercase, ASCII-strict,
// hyphenated identifier. Vietnamese diacritics are folded to their base
// letters, so "Sống Xanh" becomes "song-xanh".
func Slugify(s string) string {
	return slug.Make(s)
}
