// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields. The schema uses integer auto-increment
// primary keys.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type StockStatus string

const (
	StockStatusIn  StockStatus = "in"
	StockStatusLow StockStatus = "low"
	StockStatusOut StockStatus = "out"
)

func (s StockStatus) Valid() bool {
	switch s {
	case StockStatusIn, StockStatusLow, StockStatusOut:
		return true
	}
	return false
}

type BulkAction string

const (
	BulkActionDelete      BulkAction = "delete"
	BulkActionSetQuantity BulkAction = "set_quantity"
	BulkActionSetCategory BulkAction = "set_category"
)

type ActivityAction string

const (
	ActivityActionCreate ActivityAction = "create"
	ActivityActionUpdate ActivityAction = "update"
	ActivityActionDelete ActivityAction = "delete"
	ActivityActionImport ActivityAction = "import"
	ActivityActionLogin  ActivityAction = "login"
)

// UncategorizedName is the reserved sentinel category. It is provisioned at
// initial setup, cannot be edited or deleted, and is the fallback for
// products whose category goes away.
const UncategorizedName = "Uncategorized"
