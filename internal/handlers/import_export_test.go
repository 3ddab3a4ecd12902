// internal/handlers/import_export_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/inventra/inventra-backend/internal/services"
)

func TestDownloadTemplateHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewImportExportHandler(services.NewCSVService(nil))

	r := gin.New()
	r.GET("/products/import/template", handler.DownloadTemplate)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/import/template", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products_template.csv")
	assert.Contains(t, w.Body.String(), "ID,Name,SKU,Barcode,Price,Quantity")
}

func TestImportProductsRequiresFileUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewImportExportHandler(services.NewCSVService(nil))

	r := gin.New()
	r.POST("/products/import", handler.ImportProducts)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products/import", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
