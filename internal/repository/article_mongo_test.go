package repository

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCategoryFilterMatchesBothShapes(t *testing.T) {
	got := categoryFilter("tin-tong-hop", "Tin tổng hợp")
	want := bson.M{"$or": []bson.M{
		{"categories.slug": "tin-tong-hop"},
		{"category": "Tin tổng hợp"},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("categoryFilter = %v, want %v", got, want)
	}
}

func TestCategoryFilterWithoutLabel(t *testing.T) {
	got := categoryFilter("tin-tong-hop", "")
	want := bson.M{"$or": []bson.M{
		{"categories.slug": "tin-tong-hop"},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("categoryFilter = %v, want %v", got, want)
	}
}
