package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestArticleJSONShape(t *testing.T) {
	now := time.Now()
	article := Article{
		Title:       "Giá vàng hôm nay",
		Description: "Cập nhật giá vàng trong nước",
		SlugID:      "gia-vang-hom-nay",
		Thumbnail:   "https://cdn/thumb.jpg",
		Content: []ContentBlock{
			{Type: BlockParagraph, Text: "Nội dung", RichText: []RichTextRun{{Text: "Nội dung"}}},
			{Type: BlockImage, URL: "https://cdn/x.jpg", Alt: "ảnh", Caption: "chú thích"},
		},
		Categories:  []Category{{Value: "Kinh tế", Slug: "kinh-te"}},
		Author:      "Admin",
		TargetSites: []string{"https://site-a.example"},
		CreatedAt:   now,
	}

	data, err := json.Marshal(article)
	if err != nil {
		t.Fatalf("Failed to marshal Article: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if result["slugId"] != "gia-vang-hom-nay" {
		t.Errorf("Expected slugId field to be 'gia-vang-hom-nay', got %v", result["slugId"])
	}

	// The legacy scalar category must not appear on new documents.
	if _, present := result["category"]; present {
		t.Error("Empty legacy category serialized")
	}

	blocks, ok := result["content"].([]interface{})
	if !ok || len(blocks) != 2 {
		t.Fatalf("Expected 2 content blocks, got %v", result["content"])
	}
	image := blocks[1].(map[string]interface{})
	if image["alt"] != "ảnh" || image["caption"] != "chú thích" {
		t.Errorf("Image block fields lost: %v", image)
	}
}

func TestValidRoles(t *testing.T) {
	if !ValidRoles([]string{"user", "editor"}) {
		t.Error("valid role list rejected")
	}
	if ValidRoles(nil) {
		t.Error("empty role list accepted")
	}
	if ValidRoles([]string{"user", "superadmin"}) {
		t.Error("unknown role accepted")
	}
}
