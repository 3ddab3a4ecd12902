// internal/handlers/dashboard.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/inventra/inventra-backend/internal/services"
	"github.com/inventra/inventra-backend/internal/utils"
)

type DashboardHandler struct {
	analyticsService *services.AnalyticsService
	productService   *services.ProductService
}

func NewDashboardHandler(analyticsService *services.AnalyticsService, productService *services.ProductService) *DashboardHandler {
	return &DashboardHandler{
		analyticsService: analyticsService,
		productService:   productService,
	}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.analyticsService.GetDashboardStats()
	if err != nil {
		handleServiceError(c, err, "Dashboard")
		return
	}

	utils.SuccessResponse(c, stats)
}

func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	logs, err := h.analyticsService.RecentActivity()
	if err != nil {
		handleServiceError(c, err, "Activity")
		return
	}

	utils.SuccessResponse(c, logs)
}

// Charts returns the data series behind the dashboard charts: stock value
// per category and product additions per month.
func (h *DashboardHandler) Charts(c *gin.Context) {
	categoryStock, err := h.analyticsService.CategoryStockStats()
	if err != nil {
		handleServiceError(c, err, "Dashboard")
		return
	}

	trends, err := h.analyticsService.MonthlyTrends()
	if err != nil {
		handleServiceError(c, err, "Dashboard")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"category_stock": categoryStock,
		"monthly_trends": trends,
	})
}

func (h *DashboardHandler) LowStock(c *gin.Context) {
	items, err := h.productService.LowStockProducts()
	if err != nil {
		handleServiceError(c, err, "Product")
		return
	}

	utils.SuccessResponse(c, items)
}
