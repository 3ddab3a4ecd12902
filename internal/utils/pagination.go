// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 80
)

type PaginationParams struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`
	Order string `json:"order"`
}

type PaginationResult struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       interface{} `json:"data"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))

	return PaginationParams{
		Page:  ClampPage(page),
		Limit: ClampPageSize(limit),
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	}
}

func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampPageSize bounds the requested page size to [1, MaxPageSize]. A size
// below the range falls back to the default, so a missing or zero value
// behaves like an unspecified one.
func ClampPageSize(limit int) int {
	if limit < 1 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// SortColumn resolves a caller-supplied sort token against a whitelist of
// column names, falling back to def. Caller input is never interpolated into
// query text directly.
func SortColumn(sort string, allowed map[string]string, def string) string {
	if column, ok := allowed[sort]; ok {
		return column
	}
	return def
}

// SortDirection whitelists the sort direction, defaulting to ascending.
func SortDirection(order string) string {
	if order == "desc" {
		return "desc"
	}
	return "asc"
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.Page - 1) * params.Limit
	return db.Offset(offset).Limit(params.Limit)
}

func ApplySort(db *gorm.DB, params PaginationParams, allowed map[string]string, def string) *gorm.DB {
	return db.Order(SortColumn(params.Sort, allowed, def) + " " + SortDirection(params.Order))
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))

	return PaginationResult{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		Data:       data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
