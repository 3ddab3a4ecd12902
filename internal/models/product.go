// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string          `json:"name" gorm:"size:250;not null"`
	SKU         string          `json:"sku" gorm:"column:sku;size:50;uniqueIndex;not null"`
	Barcode     string          `json:"barcode" gorm:"column:bar_code;size:13;uniqueIndex;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0"`
	Description string          `json:"description" gorm:"type:text"`
	CategoryID  *uint           `json:"category_id" gorm:"index"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// CategoryName returns the display name for the product's category. Products
// without a category are presented under the sentinel name.
func (p *Product) CategoryName() string {
	if p.Category != nil && p.Category.Name != "" {
		return p.Category.Name
	}
	return UncategorizedName
}
