// internal/services/analytics_service.go
package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/inventra/inventra-backend/internal/config"
	"github.com/inventra/inventra-backend/internal/models"
)

// categoryStockValue is the pie chart metric: stock value held per category,
// not unit counts.
const categoryStockValue = "SUM(products.price * products.quantity)"

type AnalyticsService struct {
	db  *gorm.DB
	cfg *config.Config
}

type DashboardStats struct {
	TotalProducts   int64           `json:"total_products"`
	TotalCategories int64           `json:"total_categories"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	LowStockCount   int64           `json:"low_stock_count"`
}

// CategoryStock is one pie-chart slice: total stock value per category.
type CategoryStock struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

// MonthlyTrend is one line-chart point: products added in a calendar month.
type MonthlyTrend struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

func NewAnalyticsService(db *gorm.DB, cfg *config.Config) *AnalyticsService {
	return &AnalyticsService{db: db, cfg: cfg}
}

func (s *AnalyticsService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&models.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	var value struct {
		Total decimal.Decimal
	}
	err := s.db.Model(&models.Product{}).
		Select("COALESCE(SUM(price * quantity), 0) AS total").
		Scan(&value).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute inventory value: %w", err)
	}
	stats.InventoryValue = value.Total

	err = s.db.Model(&models.Product{}).
		Where(lowStockCondition, s.cfg.App.LowStockThreshold).
		Count(&stats.LowStockCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count low stock products: %w", err)
	}

	return stats, nil
}

func (s *AnalyticsService) RecentActivity() ([]models.ActivityLog, error) {
	limit := s.cfg.App.ActivityFeedSize
	if limit <= 0 {
		limit = 10
	}

	var logs []models.ActivityLog
	err := s.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	return logs, nil
}

// CategoryStockStats returns the stock value held per category for the
// distribution chart. Products without a category are grouped under the
// sentinel name; categories holding no value are omitted.
func (s *AnalyticsService) CategoryStockStats() ([]CategoryStock, error) {
	var rows []CategoryStock
	err := s.db.Model(&models.Product{}).
		Select("COALESCE(categories.name, ?) AS category, "+categoryStockValue+" AS value", models.UncategorizedName).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Group("categories.name").
		Having(categoryStockValue + " > 0").
		Order("value DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category stock: %w", err)
	}
	return rows, nil
}

// trendsStart picks the first month of the trend series: the earliest
// product's creation time, or now when no products exist yet.
func trendsStart(earliest *time.Time, now time.Time) time.Time {
	if earliest == nil {
		return now
	}
	return *earliest
}

// MonthlyTrends returns product creation counts per calendar month from the
// earliest product's month through the current one, oldest first. Months
// with no activity appear with a zero count.
func (s *AnalyticsService) MonthlyTrends() ([]MonthlyTrend, error) {
	var earliest *time.Time
	err := s.db.Model(&models.Product{}).
		Select("MIN(created_at)").
		Scan(&earliest).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find earliest product: %w", err)
	}

	var rows []MonthlyTrend
	err = s.db.Raw(`
		SELECT to_char(m.month, 'YYYY-MM') AS month, COUNT(p.id) AS count
		FROM generate_series(
			date_trunc('month', ?::timestamptz),
			date_trunc('month', NOW()),
			'1 month'
		) AS m(month)
		LEFT JOIN products p ON date_trunc('month', p.created_at) = m.month
		GROUP BY m.month
		ORDER BY m.month ASC
	`, trendsStart(earliest, time.Now())).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly trends: %w", err)
	}
	return rows, nil
}

// LogActivity records an audit entry. Failures are logged and swallowed so
// auditing never breaks the request that triggered it.
func (s *AnalyticsService) LogActivity(userID *uint, action models.ActivityAction, description, ip string) {
	entry := models.ActivityLog{
		UserID:      userID,
		ActionType:  action,
		Description: description,
		IPAddress:   ip,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logrus.WithError(err).Warn("Failed to record activity log")
	}
}
