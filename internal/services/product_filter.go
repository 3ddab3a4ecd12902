// internal/services/product_filter.go
package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/inventra/inventra-backend/internal/models"
)

// ProductFilter accumulates the optional listing criteria and renders them
// to parameterized conditions. The same rendered conditions are applied to
// both the count query and the row query, so the two can never disagree on
// which rows match.
type ProductFilter struct {
	Search      string
	CategoryID  *uint
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	StockStatus models.StockStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// LowStockThreshold separates "low" from "in" stock. Zero means the
	// configured application default has not been injected; callers build
	// filters through ProductService.NewFilter.
	LowStockThreshold int
}

type condition struct {
	clause string
	args   []interface{}
}

// conditions renders the filter to an ordered list of SQL fragments. The
// argument order always matches the placeholder order within each clause.
func (f ProductFilter) conditions() []condition {
	var conds []condition

	if f.Search != "" {
		// One shared pattern across name, SKU and description keeps the
		// match semantics identical for all three fields.
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, condition{
			clause: "(LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?)",
			args:   []interface{}{pattern, pattern, pattern},
		})
	}

	if f.CategoryID != nil {
		conds = append(conds, condition{
			clause: "category_id = ?",
			args:   []interface{}{*f.CategoryID},
		})
	}

	if f.MinPrice != nil {
		conds = append(conds, condition{
			clause: "price >= ?",
			args:   []interface{}{*f.MinPrice},
		})
	}

	if f.MaxPrice != nil {
		conds = append(conds, condition{
			clause: "price <= ?",
			args:   []interface{}{*f.MaxPrice},
		})
	}

	switch f.StockStatus {
	case models.StockStatusOut:
		conds = append(conds, condition{clause: "quantity = ?", args: []interface{}{0}})
	case models.StockStatusLow:
		conds = append(conds, condition{
			clause: "quantity > ? AND quantity <= ?",
			args:   []interface{}{0, f.LowStockThreshold},
		})
	case models.StockStatusIn:
		conds = append(conds, condition{
			clause: "quantity > ?",
			args:   []interface{}{f.LowStockThreshold},
		})
	}

	if f.CreatedFrom != nil {
		conds = append(conds, condition{
			clause: "created_at >= ?",
			args:   []interface{}{*f.CreatedFrom},
		})
	}

	if f.CreatedTo != nil {
		// The end date is extended by one day so the range is inclusive at
		// day granularity.
		conds = append(conds, condition{
			clause: "created_at < ?",
			args:   []interface{}{f.CreatedTo.AddDate(0, 0, 1)},
		})
	}

	return conds
}

// Apply chains all rendered conditions onto the query with AND semantics.
func (f ProductFilter) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range f.conditions() {
		db = db.Where(c.clause, c.args...)
	}
	return db
}
