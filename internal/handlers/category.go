// internal/handlers/category.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/inventra/inventra-backend/internal/services"
	"github.com/inventra/inventra-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		handleServiceError(c, err, "Category")
		return
	}

	utils.SuccessResponse(c, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		handleServiceError(c, err, "Category")
		return
	}

	utils.SuccessResponse(c, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		handleServiceError(c, err, "Category")
		return
	}

	utils.CreatedResponse(c, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	category, err := h.categoryService.UpdateCategory(id, &req)
	if err != nil {
		handleServiceError(c, err, "Category")
		return
	}

	utils.SuccessResponse(c, category)
}

// DeleteCategory removes a category after moving its products to
// Uncategorized.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		handleServiceError(c, err, "Category")
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Category deleted"})
}
