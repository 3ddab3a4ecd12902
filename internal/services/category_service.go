// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// CategoryWithCount carries a category and the number of products that
// reference it, for the listing view.
type CategoryWithCount struct {
	models.Category
	ProductCount int64 `json:"product_count"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) ListCategories() ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	err := s.db.Model(&models.Category{}).
		Select("categories.*, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id").
		Order("categories.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return rows, nil
}

func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Name collision is checked with a case-sensitive exact match; the
	// unique index backs this up under concurrency.
	exists, err := s.nameExists(req.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.db.Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) UpdateCategory(id uint, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if category.IsSentinel() {
		return nil, ErrSentinelCategory
	}

	exists, err := s.nameExists(req.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory reassigns every product referencing the category to the
// "Uncategorized" sentinel, then removes the category row. Both steps run
// in one transaction so no product is ever left dangling.
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.GetCategory(id)
	if err != nil {
		return err
	}

	if category.IsSentinel() {
		return ErrSentinelCategory
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var sentinel models.Category
		if err := tx.Where("name = ?", models.UncategorizedName).First(&sentinel).Error; err != nil {
			// The sentinel is provisioned at initial setup; its absence is a
			// configuration failure, not something to repair mid-delete.
			return fmt.Errorf("sentinel category missing: %w", err)
		}

		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			Update("category_id", sentinel.ID).Error; err != nil {
			return fmt.Errorf("failed to reassign products: %w", err)
		}

		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		return nil
	})
}

func (s *CategoryService) nameExists(name string, excludeID uint) (bool, error) {
	query := s.db.Model(&models.Category{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}
