// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inventra/inventra-backend/internal/config"
)

func newTestProductService() *ProductService {
	cfg := &config.Config{}
	cfg.App.LowStockThreshold = 10
	// Bulk validation happens before any query, so no database is needed.
	return NewProductService(nil, cfg)
}

func TestBulkDeleteRejectsEmptySelection(t *testing.T) {
	s := newTestProductService()

	_, err := s.BulkDelete(nil)
	assert.ErrorIs(t, err, ErrNoProductsSelected)

	_, err = s.BulkDelete([]uint{})
	assert.ErrorIs(t, err, ErrNoProductsSelected)
}

func TestBulkSetQuantityRejectsEmptySelection(t *testing.T) {
	s := newTestProductService()

	_, err := s.BulkSetQuantity(nil, 5)
	assert.ErrorIs(t, err, ErrNoProductsSelected)
}

func TestBulkSetQuantityRejectsOutOfRange(t *testing.T) {
	s := newTestProductService()

	_, err := s.BulkSetQuantity([]uint{1, 2}, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.BulkSetQuantity([]uint{1, 2}, 10001)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestBulkSetCategoryRejectsEmptySelection(t *testing.T) {
	s := newTestProductService()

	cid := uint(1)
	_, err := s.BulkSetCategory(nil, &cid)
	assert.ErrorIs(t, err, ErrNoProductsSelected)
}

func TestNewFilterCarriesThreshold(t *testing.T) {
	s := newTestProductService()

	f := s.NewFilter()
	assert.Equal(t, 10, f.LowStockThreshold)
}
