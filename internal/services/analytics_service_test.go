// internal/services/analytics_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategoryStockMetricIsValueNotUnits(t *testing.T) {
	// The pie chart aggregates stock value (price times quantity); both the
	// selected metric and the HAVING cutoff use the same expression.
	assert.Equal(t, "SUM(products.price * products.quantity)", categoryStockValue)
}

func TestLowStockConditionSharedByCountAndList(t *testing.T) {
	// The dashboard count and the low-stock list render the same predicate,
	// including out-of-stock rows.
	assert.Equal(t, "quantity <= ?", lowStockCondition)
}

func TestTrendsStart(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	// No products yet: the series collapses to the current month.
	assert.Equal(t, now, trendsStart(nil, now))

	earliest := time.Date(2025, 11, 3, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, earliest, trendsStart(&earliest, now))
}
