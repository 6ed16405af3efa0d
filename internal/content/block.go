// Package content turns the loosely-typed payloads sent by the editor
// frontend into the canonical shapes the rest of the system stores and
// serves. Clients send the same logical field as a string, an object or
// an array depending on editor version, so every accepted shape is
// matched explicitly and everything else is rejected.
package content

import (
	"strings"

	"github.com/tintuc/newsapi/internal/errs"
	"github.com/tintuc/newsapi/internal/models"
)

// UploadLookup maps an original client-side filename to the URL the file
// was stored under. Populated by the upload handler before normalization
// runs.
type UploadLookup map[string]string

// Resolve returns the stored URL for name, or name unchanged when no
// upload matches. Pre-hosted image references pass through untouched.
func (l UploadLookup) Resolve(name string) string {
	if url, ok := l[name]; ok {
		return url
	}
	return name
}

// NormalizeBlock converts one raw content block into its canonical form.
// Blocks with a missing or unrecognized type are dropped (nil return).
// Image blocks are returned even with empty alt or caption; rejecting
// those is the caller's job, see ValidateBlocks.
func NormalizeBlock(raw map[string]any, uploads UploadLookup) *models.ContentBlock {
	blockType, _ := raw["type"].(string)
	switch blockType {
	case models.BlockImage:
		return normalizeImage(raw, uploads)
	case models.BlockHeading:
		return normalizeHeading(raw)
	case models.BlockParagraph:
		return normalizeParagraph(raw)
	case models.BlockList:
		return normalizeList(raw)
	default:
		return nil
	}
}

// NormalizeBlocks normalizes a whole raw block sequence, dropping
// unrecognized blocks.
func NormalizeBlocks(raw []any, uploads UploadLookup) []models.ContentBlock {
	blocks := make([]models.ContentBlock, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if b := NormalizeBlock(obj, uploads); b != nil {
			blocks = append(blocks, *b)
		}
	}
	return blocks
}

// ValidateBlocks rejects a submission whose normalized content is empty
// or whose image blocks are missing alt text or a caption.
func ValidateBlocks(blocks []models.ContentBlock) error {
	if len(blocks) == 0 {
		return errs.Validationf("bài viết phải có ít nhất một khối nội dung")
	}
	for i, b := range blocks {
		if b.Type != models.BlockImage {
			continue
		}
		if b.Alt == "" || b.Caption == "" {
			return errs.Validationf("khối ảnh thứ %d thiếu alt hoặc caption", i+1)
		}
	}
	return nil
}

func normalizeImage(raw map[string]any, uploads UploadLookup) *models.ContentBlock {
	nested, _ := raw["content"].(map[string]any)

	alt := trimmedString(raw["alt"])
	caption := trimmedString(raw["caption"])
	if nested != nil {
		if alt == "" {
			alt = trimmedString(nested["alt"])
		}
		if caption == "" {
			caption = trimmedString(nested["caption"])
		}
	}

	// First non-empty of url / content names the uploaded file or a
	// pre-hosted URL.
	ref := trimmedString(raw["url"])
	if ref == "" {
		ref = trimmedString(raw["content"])
	}

	return &models.ContentBlock{
		Type:    models.BlockImage,
		URL:     uploads.Resolve(ref),
		Alt:     alt,
		Caption: caption,
	}
}

func normalizeHeading(raw map[string]any) *models.ContentBlock {
	nested, _ := raw["content"].(map[string]any)

	level := trimmedString(raw["level"])
	if level == "" && nested != nil {
		level = trimmedString(nested["level"])
	}
	if level == "" {
		level = "H2"
	}
	level = strings.ToUpper(level)

	text := trimmedString(raw["text"])
	if text == "" && nested != nil {
		text = trimmedString(nested["text"])
	}

	return &models.ContentBlock{
		Type:     models.BlockHeading,
		Level:    level,
		Text:     text,
		RichText: runArray(raw["richText"]),
	}
}

func normalizeParagraph(raw map[string]any) *models.ContentBlock {
	block := &models.ContentBlock{Type: models.BlockParagraph}

	// Precedence decides which representation is authoritative
	// downstream: an explicit richText array wins, then content-as-array,
	// then the plain string fields.
	switch {
	case isArray(raw["richText"]):
		block.RichText = runArray(raw["richText"])
		block.Text = flattenRuns(block.RichText)
	case isArray(raw["content"]):
		block.RichText = runArray(raw["content"])
		block.Text = flattenRuns(block.RichText)
	case trimmedString(raw["text"]) != "":
		block.Text = trimmedString(raw["text"])
	case trimmedString(raw["content"]) != "":
		block.Text = trimmedString(raw["content"])
	}
	return block
}

func normalizeList(raw map[string]any) *models.ContentBlock {
	source := raw["items"]
	if !isArray(source) {
		source = raw["content"]
	}

	entries, _ := source.([]any)
	items := make([][]models.RichTextRun, 0, len(entries))
	for _, entry := range entries {
		switch v := entry.(type) {
		case []any:
			items = append(items, runArray(v))
		case string:
			items = append(items, []models.RichTextRun{{Text: v}})
		case map[string]any:
			if isArray(v["richText"]) {
				items = append(items, runArray(v["richText"]))
			} else {
				items = append(items, []models.RichTextRun{})
			}
		default:
			items = append(items, []models.RichTextRun{})
		}
	}

	return &models.ContentBlock{Type: models.BlockList, Items: items}
}

// runArray decodes a raw rich-text run array. String entries become
// plain runs, objects keep their formatting flags, anything else is
// dropped.
func runArray(v any) []models.RichTextRun {
	entries, ok := v.([]any)
	if !ok {
		return nil
	}
	runs := make([]models.RichTextRun, 0, len(entries))
	for _, entry := range entries {
		switch e := entry.(type) {
		case string:
			runs = append(runs, models.RichTextRun{Text: e})
		case map[string]any:
			run := models.RichTextRun{
				Text:      stringField(e["text"]),
				Bold:      boolField(e["bold"]),
				Italic:    boolField(e["italic"]),
				Underline: boolField(e["underline"]),
				Link:      trimmedString(e["link"]),
			}
			runs = append(runs, run)
		}
	}
	return runs
}

// flattenRuns derives the plain-text form of a run sequence.
func flattenRuns(runs []models.RichTextRun) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return strings.TrimSpace(b.String())
}

func trimmedString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

func boolField(v any) bool {
	b, _ := v.(bool)
	return b
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}
