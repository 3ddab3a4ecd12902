// internal/services/product_filter_test.go
package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/models"
)

func TestProductFilterEmpty(t *testing.T) {
	f := ProductFilter{LowStockThreshold: 10}
	assert.Empty(t, f.conditions())
}

func TestProductFilterSearchSharesPattern(t *testing.T) {
	f := ProductFilter{Search: "Mouse", LowStockThreshold: 10}

	conds := f.conditions()
	require.Len(t, conds, 1)
	assert.Equal(t, "(LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?)", conds[0].clause)
	require.Len(t, conds[0].args, 3)
	assert.Equal(t, "%mouse%", conds[0].args[0])
	assert.Equal(t, conds[0].args[0], conds[0].args[1])
	assert.Equal(t, conds[0].args[0], conds[0].args[2])
}

func TestProductFilterStockStatus(t *testing.T) {
	out := ProductFilter{StockStatus: models.StockStatusOut, LowStockThreshold: 10}.conditions()
	require.Len(t, out, 1)
	assert.Equal(t, "quantity = ?", out[0].clause)
	assert.Equal(t, []interface{}{0}, out[0].args)

	low := ProductFilter{StockStatus: models.StockStatusLow, LowStockThreshold: 10}.conditions()
	require.Len(t, low, 1)
	assert.Equal(t, "quantity > ? AND quantity <= ?", low[0].clause)
	assert.Equal(t, []interface{}{0, 10}, low[0].args)

	in := ProductFilter{StockStatus: models.StockStatusIn, LowStockThreshold: 10}.conditions()
	require.Len(t, in, 1)
	assert.Equal(t, "quantity > ?", in[0].clause)
	assert.Equal(t, []interface{}{10}, in[0].args)
}

func TestProductFilterPriceRange(t *testing.T) {
	min := decimal.NewFromInt(10)
	max := decimal.NewFromInt(100)
	f := ProductFilter{MinPrice: &min, MaxPrice: &max, LowStockThreshold: 10}

	conds := f.conditions()
	require.Len(t, conds, 2)
	assert.Equal(t, "price >= ?", conds[0].clause)
	assert.Equal(t, "price <= ?", conds[1].clause)
}

func TestProductFilterDateRangeInclusiveUpperBound(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	f := ProductFilter{CreatedFrom: &from, CreatedTo: &to, LowStockThreshold: 10}

	conds := f.conditions()
	require.Len(t, conds, 2)

	assert.Equal(t, "created_at >= ?", conds[0].clause)
	assert.Equal(t, from, conds[0].args[0])

	// The upper bound is exclusive of the following midnight, so the whole
	// end day is included.
	assert.Equal(t, "created_at < ?", conds[1].clause)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), conds[1].args[0])
}

func TestProductFilterCombinesAllCriteria(t *testing.T) {
	cid := uint(3)
	min := decimal.NewFromInt(5)
	f := ProductFilter{
		Search:            "cable",
		CategoryID:        &cid,
		MinPrice:          &min,
		StockStatus:       models.StockStatusLow,
		LowStockThreshold: 10,
	}

	conds := f.conditions()
	require.Len(t, conds, 4)
	assert.Equal(t, "category_id = ?", conds[1].clause)
	assert.Equal(t, uint(3), conds[1].args[0])
}
