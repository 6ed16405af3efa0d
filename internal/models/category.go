package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoredCategory is a site-wide category managed through the category
// endpoints. Distinct from Category, which is the per-article tag pair.
type StoredCategory struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Value     string             `json:"value" bson:"value"`
	Label     string             `json:"label" bson:"label"`
	IsDefault bool               `json:"isDefault" bson:"isDefault"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SeedCategories are created on first read if missing.
var SeedCategories = []StoredCategory{
	{Value: "highlight", Label: "Nổi bật", IsDefault: true},
	{Value: "popular", Label: "Được quan tâm", IsDefault: true},
	{Value: "green-life", Label: "Sống xanh", IsDefault: true},
	{Value: "chat", Label: "Chất", IsDefault: true},
	{Value: "health", Label: "Khỏe", IsDefault: true},
}
