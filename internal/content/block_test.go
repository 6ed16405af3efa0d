package content

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tintuc/newsapi/internal/errs"
	"github.com/tintuc/newsapi/internal/models"
)

func TestNormalizeBlockParagraphRichText(t *testing.T) {
	block := NormalizeBlock(map[string]any{
		"type": "paragraph",
		"richText": []any{
			map[string]any{"text": "a"},
			map[string]any{"text": "b"},
		},
	}, nil)

	if block == nil {
		t.Fatal("NormalizeBlock returned nil")
	}
	if block.Text != "ab" {
		t.Errorf("Text = %q, want %q", block.Text, "ab")
	}
	if len(block.RichText) != 2 {
		t.Fatalf("len(RichText) = %d, want 2", len(block.RichText))
	}
}

func TestNormalizeBlockParagraphPrecedence(t *testing.T) {
	// An explicit richText array wins over every other field.
	block := NormalizeBlock(map[string]any{
		"type":     "paragraph",
		"richText": []any{map[string]any{"text": "rich", "bold": true}},
		"content":  "plain content",
		"text":     "plain text",
	}, nil)

	if block.Text != "rich" {
		t.Errorf("Text = %q, want %q", block.Text, "rich")
	}
	if !block.RichText[0].Bold {
		t.Error("Bold flag lost during normalization")
	}

	// content as an array is treated as richText.
	block = NormalizeBlock(map[string]any{
		"type":    "paragraph",
		"content": []any{map[string]any{"text": "x"}, map[string]any{"text": "y"}},
	}, nil)
	if block.Text != "xy" {
		t.Errorf("Text = %q, want %q", block.Text, "xy")
	}

	// Plain text string before plain content string.
	block = NormalizeBlock(map[string]any{
		"type":    "paragraph",
		"text":    "  first  ",
		"content": "second",
	}, nil)
	if block.Text != "first" {
		t.Errorf("Text = %q, want %q", block.Text, "first")
	}

	// content string is the last resort.
	block = NormalizeBlock(map[string]any{
		"type":    "paragraph",
		"content": " fallback ",
	}, nil)
	if block.Text != "fallback" {
		t.Errorf("Text = %q, want %q", block.Text, "fallback")
	}
}

func TestNormalizeBlockList(t *testing.T) {
	block := NormalizeBlock(map[string]any{
		"type":    "list",
		"content": []any{"x", "y"},
	}, nil)

	want := [][]models.RichTextRun{
		{{Text: "x"}},
		{{Text: "y"}},
	}
	if !reflect.DeepEqual(block.Items, want) {
		t.Errorf("Items = %v, want %v", block.Items, want)
	}
}

func TestNormalizeBlockListShapes(t *testing.T) {
	block := NormalizeBlock(map[string]any{
		"type": "list",
		"items": []any{
			[]any{map[string]any{"text": "run", "italic": true}},
			map[string]any{"richText": []any{map[string]any{"text": "unwrapped"}}},
			map[string]any{"unknown": true},
			42,
		},
	}, nil)

	if len(block.Items) != 4 {
		t.Fatalf("len(Items) = %d, want 4", len(block.Items))
	}
	if !block.Items[0][0].Italic {
		t.Error("Italic flag lost on array item")
	}
	if block.Items[1][0].Text != "unwrapped" {
		t.Errorf("Items[1][0].Text = %q, want %q", block.Items[1][0].Text, "unwrapped")
	}
	if len(block.Items[2]) != 0 || len(block.Items[3]) != 0 {
		t.Error("unrecognized item shapes should normalize to empty run arrays")
	}
}

func TestNormalizeBlockImageUploadLookup(t *testing.T) {
	lookup := UploadLookup{"photo.png": "https://cdn/x.jpg"}

	block := NormalizeBlock(map[string]any{
		"type":    "image",
		"content": "photo.png",
		"alt":     " mô tả ",
		"caption": "chú thích",
	}, lookup)

	if block.URL != "https://cdn/x.jpg" {
		t.Errorf("URL = %q, want %q", block.URL, "https://cdn/x.jpg")
	}
	if block.Alt != "mô tả" {
		t.Errorf("Alt = %q, want %q", block.Alt, "mô tả")
	}
}

func TestNormalizeBlockImagePassThrough(t *testing.T) {
	// Pre-hosted images keep their URL when no upload matches.
	block := NormalizeBlock(map[string]any{
		"type":    "image",
		"url":     "https://elsewhere/pic.jpg",
		"content": map[string]any{"alt": "a", "caption": "c"},
	}, UploadLookup{})

	if block.URL != "https://elsewhere/pic.jpg" {
		t.Errorf("URL = %q, want pass-through", block.URL)
	}
	if block.Alt != "a" || block.Caption != "c" {
		t.Errorf("nested alt/caption not extracted: %q %q", block.Alt, block.Caption)
	}
}

func TestNormalizeBlockHeading(t *testing.T) {
	block := NormalizeBlock(map[string]any{
		"type": "heading",
		"text": " Tiêu đề ",
	}, nil)

	if block.Level != "H2" {
		t.Errorf("Level = %q, want default H2", block.Level)
	}
	if block.Text != "Tiêu đề" {
		t.Errorf("Text = %q, want trimmed", block.Text)
	}

	block = NormalizeBlock(map[string]any{
		"type":    "heading",
		"content": map[string]any{"level": "h3", "text": "Phần 2"},
	}, nil)
	if block.Level != "H3" {
		t.Errorf("Level = %q, want H3", block.Level)
	}
	if block.Text != "Phần 2" {
		t.Errorf("Text = %q, want %q", block.Text, "Phần 2")
	}
}

func TestNormalizeBlockUnknownDropped(t *testing.T) {
	if b := NormalizeBlock(map[string]any{"type": "video"}, nil); b != nil {
		t.Errorf("unknown type should drop, got %+v", b)
	}
	if b := NormalizeBlock(map[string]any{"text": "no type"}, nil); b != nil {
		t.Errorf("missing type should drop, got %+v", b)
	}
}

func TestNormalizeBlocksIdempotent(t *testing.T) {
	raw := []any{
		map[string]any{
			"type":     "paragraph",
			"richText": []any{map[string]any{"text": "đoạn văn", "bold": true}},
		},
		map[string]any{
			"type": "heading", "level": "H3", "text": "Tiêu đề",
		},
		map[string]any{
			"type": "list", "items": []any{[]any{map[string]any{"text": "mục"}}},
		},
	}

	first := NormalizeBlocks(raw, nil)

	// Feed the canonical output back through normalization.
	again := make([]any, 0, len(first))
	for _, b := range first {
		entry := map[string]any{"type": b.Type}
		if b.Level != "" {
			entry["level"] = b.Level
		}
		if b.Text != "" {
			entry["text"] = b.Text
		}
		if b.RichText != nil {
			runs := make([]any, len(b.RichText))
			for i, r := range b.RichText {
				runs[i] = map[string]any{"text": r.Text, "bold": r.Bold}
			}
			entry["richText"] = runs
		}
		if b.Items != nil {
			items := make([]any, len(b.Items))
			for i, item := range b.Items {
				runs := make([]any, len(item))
				for j, r := range item {
					runs[j] = map[string]any{"text": r.Text}
				}
				items[i] = runs
			}
			entry["items"] = items
		}
		again = append(again, entry)
	}

	second := NormalizeBlocks(again, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestValidateBlocks(t *testing.T) {
	if err := ValidateBlocks(nil); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("empty sequence: err = %v, want validation error", err)
	}

	blocks := []models.ContentBlock{
		{Type: models.BlockParagraph, Text: "ok"},
		{Type: models.BlockImage, URL: "x.jpg", Alt: "", Caption: "c"},
	}
	if err := ValidateBlocks(blocks); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("image without alt: err = %v, want validation error", err)
	}

	blocks[1].Alt = "a"
	if err := ValidateBlocks(blocks); err != nil {
		t.Errorf("valid blocks rejected: %v", err)
	}
}
