// internal/handlers/product_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/inventra/inventra-backend/internal/config"
	"github.com/inventra/inventra-backend/internal/services"
)

func newBulkTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.LowStockThreshold = 10
	// Requests below are rejected before any query runs, so a nil database
	// is safe here.
	handler := NewProductHandler(services.NewProductService(nil, cfg))

	r := gin.New()
	r.POST("/products/bulk", handler.BulkAction)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestBulkActionRejectsUnknownAction(t *testing.T) {
	r := newBulkTestRouter()

	w := postJSON(r, "/products/bulk", `{"action":"explode","product_ids":[1]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkActionRejectsEmptySelection(t *testing.T) {
	r := newBulkTestRouter()

	w := postJSON(r, "/products/bulk", `{"action":"delete","product_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No products selected")
}

func TestBulkActionRequiresQuantityForSetQuantity(t *testing.T) {
	r := newBulkTestRouter()

	w := postJSON(r, "/products/bulk", `{"action":"set_quantity","product_ids":[1,2]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "quantity is required")
}

func TestBulkActionRejectsOutOfRangeQuantity(t *testing.T) {
	r := newBulkTestRouter()

	w := postJSON(r, "/products/bulk", `{"action":"set_quantity","product_ids":[1],"quantity":20000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "between 0 and 10000")
}

func TestBulkActionRejectsMissingBody(t *testing.T) {
	r := newBulkTestRouter()

	w := postJSON(r, "/products/bulk", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
