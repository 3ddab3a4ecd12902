// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/inventra/inventra-backend/internal/config"
	"github.com/inventra/inventra-backend/internal/handlers"
	"github.com/inventra/inventra-backend/internal/middleware"
	"github.com/inventra/inventra-backend/internal/services"
	"github.com/inventra/inventra-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	mailer := services.NewMailer(cfg)
	authService := services.NewAuthService(db, cfg, mailer)
	productService := services.NewProductService(db, cfg)
	categoryService := services.NewCategoryService(db)
	csvService := services.NewCSVService(db)
	analyticsService := services.NewAnalyticsService(db, cfg)
	aiService := services.NewAIService(cfg.AI)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	importExportHandler := handlers.NewImportExportHandler(csvService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService, productService)
	aiHandler := handlers.NewAIHandler(aiService, categoryService, analyticsService, productService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLog(analyticsService))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.GET("/csrf", middleware.CSRFToken())
			auth.POST("/signup", middleware.SignupRateLimit(), authHandler.Signup)
			auth.POST("/login", middleware.LoginRateLimit(cfg.Security.AuthRateLimit, cfg.Security.AuthRateWindow), authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
			auth.POST("/forgot-password", middleware.LoginRateLimit(cfg.Security.AuthRateLimit, cfg.Security.AuthRateWindow), authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		products := v1.Group("/products")
		products.Use(middleware.AuthRequired())
		{
			products.GET("", productHandler.ListProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/low-stock", productHandler.LowStockProducts)
			products.POST("/bulk", productHandler.BulkAction)
			products.GET("/export", importExportHandler.ExportProducts)
			products.GET("/import/template", importExportHandler.DownloadTemplate)
			products.POST("/import", importExportHandler.ImportProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		categories := v1.Group("/categories")
		categories.Use(middleware.AuthRequired())
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.AuthRequired())
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
			dashboard.GET("/activity", dashboardHandler.RecentActivity)
			dashboard.GET("/charts", dashboardHandler.Charts)
			dashboard.GET("/low-stock", dashboardHandler.LowStock)
		}

		ai := v1.Group("/ai")
		ai.Use(middleware.AuthRequired(), middleware.AIRateLimit())
		{
			ai.POST("/generate-description", aiHandler.GenerateDescription)
			ai.POST("/search-natural", aiHandler.Search)
			ai.POST("/suggest-category", aiHandler.SuggestCategory)
			ai.POST("/dashboard-insights", aiHandler.Insights)
		}
	}

	return r
}
