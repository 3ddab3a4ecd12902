// internal/handlers/import_export.go
package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/inventra/inventra-backend/internal/services"
	"github.com/inventra/inventra-backend/internal/utils"
)

type ImportExportHandler struct {
	csvService *services.CSVService
}

func NewImportExportHandler(csvService *services.CSVService) *ImportExportHandler {
	return &ImportExportHandler{csvService: csvService}
}

// ExportProducts streams the full product list as a CSV attachment.
func (h *ImportExportHandler) ExportProducts(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFilename()))

	if err := h.csvService.ExportProducts(c.Writer); err != nil {
		// Headers may already be written, so just log.
		logrus.WithError(err).Error("CSV export failed")
	}
}

// DownloadTemplate serves a sample CSV showing the import format.
func (h *ImportExportHandler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="products_template.csv"`)

	if err := h.csvService.WriteTemplate(c.Writer); err != nil {
		logrus.WithError(err).Error("CSV template write failed")
	}
}

// ImportProducts accepts a multipart "file" upload and upserts its rows.
// Invalid rows are reported as warnings; the import fails only when no row
// can be saved.
func (h *ImportExportHandler) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "A CSV file upload is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Could not read uploaded file", nil)
		return
	}
	defer file.Close()

	result, err := h.csvService.ImportProducts(file)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, result)
}
