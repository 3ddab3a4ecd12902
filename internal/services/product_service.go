// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/inventra/inventra-backend/internal/config"
	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/utils"
)

// productSortColumns whitelists the sortable columns. Anything else falls
// back to the primary key.
var productSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"quantity":   "quantity",
	"created_at": "created_at",
}

const defaultProductSort = "id"

type ProductService struct {
	db  *gorm.DB
	cfg *config.Config
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=250"`
	SKU         string  `json:"sku,omitempty" validate:"omitempty,max=50"`
	Barcode     string  `json:"barcode,omitempty" validate:"omitempty,len=13,numeric"`
	Price       float64 `json:"price" validate:"required,min=1,max=1000000"`
	Quantity    int     `json:"quantity" validate:"min=0,max=10000"`
	Description string  `json:"description" validate:"required,min=1,max=5000"`
	CategoryID  *uint   `json:"category_id,omitempty"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=250"`
	Price       float64 `json:"price" validate:"required,min=1,max=1000000"`
	Quantity    int     `json:"quantity" validate:"min=0,max=10000"`
	Description string  `json:"description" validate:"required,min=1,max=5000"`
	CategoryID  *uint   `json:"category_id,omitempty"`
}

// ProductListItem augments a product row with its category display name.
type ProductListItem struct {
	models.Product
	CategoryName string `json:"category_name"`
}

func NewProductService(db *gorm.DB, cfg *config.Config) *ProductService {
	return &ProductService{
		db:  db,
		cfg: cfg,
	}
}

// NewFilter returns a ProductFilter carrying the configured low-stock
// threshold, the single source of truth shared with the dashboard.
func (s *ProductService) NewFilter() ProductFilter {
	return ProductFilter{LowStockThreshold: s.cfg.App.LowStockThreshold}
}

// ListProducts pages through filtered, sorted products. The filter is
// applied identically to the count and the row fetch.
func (s *ProductService) ListProducts(filter ProductFilter, params utils.PaginationParams) ([]ProductListItem, int64, error) {
	query := filter.Apply(s.db.Model(&models.Product{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = utils.ApplySort(query, params, productSortColumns, defaultProductSort)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Preload("Category").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	items := make([]ProductListItem, 0, len(products))
	for i := range products {
		items = append(items, ProductListItem{
			Product:      products[i],
			CategoryName: products[i].CategoryName(),
		})
	}

	return items, total, nil
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.CategoryID != nil {
		if err := s.checkCategoryExists(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	sku := req.SKU
	if sku == "" {
		sku = utils.GenerateSKU(req.Name)
	}
	barcode := req.Barcode
	if barcode == "" {
		barcode = utils.RandomBarcode()
	}

	product := &models.Product{
		Name:        req.Name,
		SKU:         sku,
		Barcode:     barcode,
		Price:       decimal.NewFromFloat(req.Price).Round(2),
		Quantity:    req.Quantity,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}

	if err := s.db.Create(product).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSKU
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.db.Preload("Category").First(product, product.ID)
	return product, nil
}

func (s *ProductService) UpdateProduct(id uint, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.CategoryID != nil {
		if err := s.checkCategoryExists(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"price":       decimal.NewFromFloat(req.Price).Round(2),
		"quantity":    req.Quantity,
		"description": req.Description,
		"category_id": req.CategoryID,
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.db.Preload("Category").First(&product, id)
	return &product, nil
}

func (s *ProductService) DeleteProduct(id uint) error {
	result := s.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// lowStockCondition is the single definition behind the dashboard's
// low-stock count and list, so the two can never disagree. Out-of-stock
// rows are included; the listing filter's "low" bucket excludes them
// because it has a separate "out" bucket.
const lowStockCondition = "quantity <= ?"

// LowStockProducts lists products at or below the configured threshold,
// lowest quantity first.
func (s *ProductService) LowStockProducts() ([]ProductListItem, error) {
	var products []models.Product
	if err := s.db.Preload("Category").
		Where(lowStockCondition, s.cfg.App.LowStockThreshold).
		Order("quantity ASC, name ASC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch low stock products: %w", err)
	}

	items := make([]ProductListItem, 0, len(products))
	for i := range products {
		items = append(items, ProductListItem{
			Product:      products[i],
			CategoryName: products[i].CategoryName(),
		})
	}
	return items, nil
}

// Bulk operations. Each is one set-based statement inside a transaction;
// an empty identifier set is rejected before any database call.

func (s *ProductService) BulkDelete(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoProductsSelected
	}

	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ?", ids).Delete(&models.Product{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete products: %w", result.Error)
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}

func (s *ProductService) BulkSetQuantity(ids []uint, quantity int) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoProductsSelected
	}
	if quantity < 0 || quantity > 10000 {
		return 0, ErrInvalidQuantity
	}

	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Product{}).
			Where("id IN ?", ids).
			Update("quantity", quantity)
		if result.Error != nil {
			return fmt.Errorf("failed to update quantities: %w", result.Error)
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}

func (s *ProductService) BulkSetCategory(ids []uint, categoryID *uint) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoProductsSelected
	}
	if categoryID != nil {
		if err := s.checkCategoryExists(*categoryID); err != nil {
			return 0, err
		}
	}

	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Product{}).
			Where("id IN ?", ids).
			Update("category_id", categoryID)
		if result.Error != nil {
			return fmt.Errorf("failed to reassign categories: %w", result.Error)
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}

func (s *ProductService) checkCategoryExists(id uint) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
