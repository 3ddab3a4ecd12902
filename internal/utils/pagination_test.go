// internal/utils/pagination_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPageSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"negative falls back to default", -5, DefaultPageSize},
		{"zero falls back to default", 0, DefaultPageSize},
		{"minimum allowed", 1, 1},
		{"within range", 25, 25},
		{"at maximum", 80, 80},
		{"above maximum clamps", 500, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampPageSize(tt.input))
		})
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(-3))
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(1))
	assert.Equal(t, 42, ClampPage(42))
}

func TestSortColumn(t *testing.T) {
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"price":      "price",
		"quantity":   "quantity",
		"created_at": "created_at",
	}

	assert.Equal(t, "price", SortColumn("price", allowed, "id"))
	assert.Equal(t, "id", SortColumn("", allowed, "id"))
	assert.Equal(t, "id", SortColumn("password_hash", allowed, "id"))
	assert.Equal(t, "id", SortColumn("name; DROP TABLE products", allowed, "id"))
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, "desc", SortDirection("desc"))
	assert.Equal(t, "asc", SortDirection("asc"))
	assert.Equal(t, "asc", SortDirection(""))
	assert.Equal(t, "asc", SortDirection("DESC"))
	assert.Equal(t, "asc", SortDirection("sideways"))
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 10}

	result := CreatePaginationResult([]string{"a"}, 25, params)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.TotalPages)

	empty := CreatePaginationResult(nil, 0, params)
	assert.Equal(t, 0, empty.TotalPages)
}
