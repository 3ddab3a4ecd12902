// internal/handlers/ai.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/services"
	"github.com/inventra/inventra-backend/internal/utils"
)

type AIHandler struct {
	aiService        *services.AIService
	categoryService  *services.CategoryService
	analyticsService *services.AnalyticsService
	productService   *services.ProductService
}

func NewAIHandler(ai *services.AIService, categories *services.CategoryService, analytics *services.AnalyticsService, products *services.ProductService) *AIHandler {
	return &AIHandler{
		aiService:        ai,
		categoryService:  categories,
		analyticsService: analytics,
		productService:   products,
	}
}

// GenerateDescription drafts a short product description from the name and
// category.
func (h *AIHandler) GenerateDescription(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "name is required", nil)
		return
	}

	description, err := h.aiService.GenerateDescription(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		handleServiceError(c, err, "AI")
		return
	}

	utils.SuccessResponse(c, gin.H{"description": description})
}

// Search converts a natural-language query into listing filters the client
// can apply to the product list endpoint.
func (h *AIHandler) Search(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "query is required", nil)
		return
	}

	names, err := h.categoryNames()
	if err != nil {
		handleServiceError(c, err, "Category")
		return
	}

	filters, err := h.aiService.NaturalLanguageSearch(c.Request.Context(), req.Query, names)
	if err != nil {
		handleServiceError(c, err, "AI")
		return
	}

	utils.SuccessResponse(c, gin.H{"filters": filters})
}

// SuggestCategory picks the best existing category for a product.
func (h *AIHandler) SuggestCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "name is required", nil)
		return
	}

	names, err := h.categoryNames()
	if err != nil {
		handleServiceError(c, err, "Category")
		return
	}

	suggestion, err := h.aiService.SuggestCategory(c.Request.Context(), req.Name, req.Description, names)
	if err != nil {
		handleServiceError(c, err, "AI")
		return
	}

	utils.SuccessResponse(c, gin.H{"category": suggestion})
}

// Insights summarizes the current inventory state in a few sentences.
func (h *AIHandler) Insights(c *gin.Context) {
	stats, err := h.analyticsService.GetDashboardStats()
	if err != nil {
		handleServiceError(c, err, "Dashboard")
		return
	}

	lowStock, err := h.productService.LowStockProducts()
	if err != nil {
		handleServiceError(c, err, "Product")
		return
	}

	items := make([]models.Product, 0, len(lowStock))
	for _, item := range lowStock {
		items = append(items, item.Product)
	}

	insights, err := h.aiService.DashboardInsights(c.Request.Context(), stats, items)
	if err != nil {
		handleServiceError(c, err, "AI")
		return
	}

	utils.SuccessResponse(c, gin.H{"insights": insights})
}

func (h *AIHandler) categoryNames() ([]string, error) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, cat.Name)
	}
	return names, nil
}
