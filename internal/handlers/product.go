// internal/handlers/product.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/services"
	"github.com/inventra/inventra-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts returns a filtered, sorted, paginated product page. All
// filter parameters are optional and combine with AND.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	items, total, err := h.productService.ListProducts(filter, params)
	if err != nil {
		handleServiceError(c, err, "Product")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(items, total, params))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		handleServiceError(c, err, "Product")
		return
	}

	utils.SuccessResponse(c, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		handleServiceError(c, err, "Product")
		return
	}

	utils.CreatedResponse(c, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		handleServiceError(c, err, "Product")
		return
	}

	utils.SuccessResponse(c, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		handleServiceError(c, err, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Product deleted"})
}

func (h *ProductHandler) LowStockProducts(c *gin.Context) {
	items, err := h.productService.LowStockProducts()
	if err != nil {
		handleServiceError(c, err, "Product")
		return
	}

	utils.SuccessResponse(c, items)
}

type bulkRequest struct {
	Action     models.BulkAction `json:"action" binding:"required"`
	ProductIDs []uint            `json:"product_ids"`
	Quantity   *int              `json:"quantity,omitempty"`
	CategoryID *uint             `json:"category_id,omitempty"`
}

// BulkAction dispatches a bulk operation over the selected products and
// reports how many rows were affected.
func (h *ProductHandler) BulkAction(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	var affected int64
	var err error

	switch req.Action {
	case models.BulkActionDelete:
		affected, err = h.productService.BulkDelete(req.ProductIDs)
	case models.BulkActionSetQuantity:
		if req.Quantity == nil {
			utils.BadRequestResponse(c, "quantity is required for set_quantity", nil)
			return
		}
		affected, err = h.productService.BulkSetQuantity(req.ProductIDs, *req.Quantity)
	case models.BulkActionSetCategory:
		affected, err = h.productService.BulkSetCategory(req.ProductIDs, req.CategoryID)
	default:
		utils.BadRequestResponse(c, "Unknown bulk action", nil)
		return
	}

	if err != nil {
		handleServiceError(c, err, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{"affected": affected})
}

func (h *ProductHandler) parseFilter(c *gin.Context) (services.ProductFilter, bool) {
	filter := h.productService.NewFilter()
	filter.Search = c.Query("search")

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid category_id", nil)
			return filter, false
		}
		cid := uint(id)
		filter.CategoryID = &cid
	}

	if raw := c.Query("min_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid min_price", nil)
			return filter, false
		}
		filter.MinPrice = &price
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid max_price", nil)
			return filter, false
		}
		filter.MaxPrice = &price
	}

	if raw := c.Query("stock_status"); raw != "" {
		status := models.StockStatus(raw)
		if !status.Valid() {
			utils.BadRequestResponse(c, "stock_status must be one of: in, low, out", nil)
			return filter, false
		}
		filter.StockStatus = status
	}

	if raw := c.Query("created_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequestResponse(c, "created_from must be YYYY-MM-DD", nil)
			return filter, false
		}
		filter.CreatedFrom = &from
	}
	if raw := c.Query("created_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequestResponse(c, "created_to must be YYYY-MM-DD", nil)
			return filter, false
		}
		filter.CreatedTo = &to
	}

	return filter, true
}
