// internal/models/category.go
package models

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string `json:"description" gorm:"size:500"`

	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// IsSentinel reports whether this is the reserved "Uncategorized" category,
// which is exempt from edit and delete.
func (c *Category) IsSentinel() bool {
	return c.Name == UncategorizedName
}
