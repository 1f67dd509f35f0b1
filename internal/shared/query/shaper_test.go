package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSortable = Sortable{
	Fields: map[string]string{
		"fullName":  "full_name",
		"age":       "age",
		"createdAt": "created_at",
	},
	Nullable: map[string]bool{
		"age": true,
	},
}

func TestShapeSortWhitelist(t *testing.T) {
	tests := []struct {
		name       string
		sortBy     string
		wantColumn string
	}{
		{"known field maps to its column", "fullName", "full_name"},
		{"unknown field falls back to creation time", "score", "created_at"},
		{"empty field falls back to creation time", "", "created_at"},
		{"column names are not accepted directly", "full_name", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape := testSortable.Shape(tt.sortBy, "", "", "")
			assert.Equal(t, tt.wantColumn, shape.SortColumn)
		})
	}
}

func TestShapeDirection(t *testing.T) {
	assert.False(t, testSortable.Shape("fullName", "", "", "").Descending)
	assert.False(t, testSortable.Shape("fullName", "asc", "", "").Descending)
	assert.False(t, testSortable.Shape("fullName", "DESC", "", "").Descending, "only the literal lowercase desc descends")
	assert.True(t, testSortable.Shape("fullName", "desc", "", "").Descending)
}

func TestShapeNullableFilter(t *testing.T) {
	// Sorting on an optional column excludes rows without a value.
	assert.True(t, testSortable.Shape("age", "", "", "").FilterNotNull)

	// Required columns and the fallback never filter.
	assert.False(t, testSortable.Shape("fullName", "", "", "").FilterNotNull)
	assert.False(t, testSortable.Shape("unknown", "", "", "").FilterNotNull)
}

func TestShapePaginationBounds(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"defaults on empty", "", "", 1, 10},
		{"in-range values pass through", "3", "5", 3, 5},
		{"zero page falls back", "0", "5", 1, 5},
		{"page above cap falls back", "11", "5", 1, 5},
		{"zero limit falls back", "3", "0", 3, 10},
		{"limit above cap falls back", "3", "11", 3, 10},
		{"negative values fall back", "-1", "-2", 1, 10},
		{"garbage falls back", "abc", "x", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape := testSortable.Shape("", "", tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, shape.Page)
			assert.Equal(t, tt.wantLimit, shape.Limit)
		})
	}
}

func TestShapeOffset(t *testing.T) {
	assert.Equal(t, 0, Shape{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Shape{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 12, Shape{Page: 4, Limit: 4}.Offset())
}
