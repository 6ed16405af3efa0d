package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Block types accepted in article content.
const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
	BlockImage     = "image"
	BlockList      = "list"
)

// RichTextRun is a span of formatted text. A paragraph, heading or list
// item is an ordered sequence of runs.
type RichTextRun struct {
	Text      string `json:"text" bson:"text"`
	Bold      bool   `json:"bold,omitempty" bson:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty" bson:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty" bson:"underline,omitempty"`
	Link      string `json:"link,omitempty" bson:"link,omitempty"`
}

// ContentBlock is one structural unit of article content. Type is always
// set; the remaining fields depend on it.
type ContentBlock struct {
	Type     string          `json:"type" bson:"type"`
	Level    string          `json:"level,omitempty" bson:"level,omitempty"`
	Text     string          `json:"text,omitempty" bson:"text,omitempty"`
	RichText []RichTextRun   `json:"richText,omitempty" bson:"richText,omitempty"`
	Items    [][]RichTextRun `json:"items,omitempty" bson:"items,omitempty"`
	URL      string          `json:"url,omitempty" bson:"url,omitempty"`
	Alt      string          `json:"alt,omitempty" bson:"alt,omitempty"`
	Caption  string          `json:"caption,omitempty" bson:"caption,omitempty"`
}

// Category is a (label, slug) pair attached to an article. Slugs are
// unique within one article's category set.
type Category struct {
	Value string `json:"value" bson:"value"`
	Slug  string `json:"slug" bson:"slug"`
}

// DefaultCategory is attached to articles that end up with no valid
// category after normalization.
var DefaultCategory = Category{Value: "Tin tong hop", Slug: "tin-tong-hop"}

// Article is a published news article.
type Article struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	SlugID      string             `json:"slugId" bson:"slugId"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail"`
	Content     []ContentBlock     `json:"content" bson:"content"`
	Categories  []Category         `json:"categories" bson:"categories,omitempty"`
	// Category is the legacy scalar shape kept for read compatibility
	// with documents written before categories became an array.
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	Author      string    `json:"author" bson:"author"`
	TargetSites []string  `json:"targetSites" bson:"targetSites"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

