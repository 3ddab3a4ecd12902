// internal/services/csv_service.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inventra/inventra-backend/internal/database"
	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/utils"
)

// csvHeader is the column order for exports and the template. Imports map
// columns by header name instead, so reordered or partial files still load.
var csvHeader = []string{
	"ID", "Name", "SKU", "Barcode", "Price", "Quantity",
	"Description", "Category", "Created At", "Updated At",
}

type CSVService struct {
	db *gorm.DB
}

// ImportRow is one parsed and validated data row from an uploaded CSV.
// Line numbering counts the header as row 1, so the first data row is 2.
type ImportRow struct {
	Line        int
	Name        string
	SKU         string
	Barcode     string
	Price       decimal.Decimal
	Quantity    int
	Description string
	Category    string
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
}

func NewCSVService(db *gorm.DB) *CSVService {
	return &CSVService{db: db}
}

// ExportFilename returns the attachment name for an export started now.
func ExportFilename() string {
	return fmt.Sprintf("products_%s.csv", time.Now().Format("2006-01-02"))
}

// ExportProducts streams every product as CSV, ordered by ID ascending.
func (s *CSVService) ExportProducts(w io.Writer) error {
	var products []models.Product
	if err := s.db.Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range products {
		record := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			p.SKU,
			p.Barcode,
			p.Price.StringFixed(2),
			strconv.Itoa(p.Quantity),
			p.Description,
			p.CategoryName(),
			p.CreatedAt.Format(time.RFC3339),
			p.UpdatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTemplate emits a small sample file showing the expected columns.
func (s *CSVService) WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		csvHeader,
		{"", "Wireless Mouse", "WIR-1024", "4006381333931", "29.99", "150", "Ergonomic 2.4GHz wireless mouse", "Electronics", "", ""},
		{"", "Desk Lamp", "", "", "45.50", "80", "Adjustable LED desk lamp", "Home & Office", "", ""},
		{"", "Notebook A5", "NOT-0042", "", "4.25", "500", "Ruled 200-page notebook", "", "", ""},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write template: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseImportRows reads a product CSV and returns the rows that passed
// validation plus a warning per rejected row. It touches no database state,
// so callers can validate uploads before committing anything.
func ParseImportRows(r io.Reader) ([]ImportRow, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, nil, fmt.Errorf("missing required column %q", "Name")
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var rows []ImportRow
	var warnings []string
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Row %d: malformed CSV record", line))
			continue
		}

		row := ImportRow{
			Line:        line,
			Name:        field(record, "name"),
			SKU:         field(record, "sku"),
			Barcode:     field(record, "barcode"),
			Description: field(record, "description"),
			Category:    field(record, "category"),
		}

		if row.Name == "" {
			warnings = append(warnings, fmt.Sprintf("Row %d: name is required", line))
			continue
		}
		if len(row.Name) > 250 {
			warnings = append(warnings, fmt.Sprintf("Row %d: name exceeds 250 characters", line))
			continue
		}

		priceStr := field(record, "price")
		if priceStr == "" {
			warnings = append(warnings, fmt.Sprintf("Row %d: price is required", line))
			continue
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Row %d: invalid price %q", line, priceStr))
			continue
		}
		if price.LessThan(decimal.NewFromInt(1)) || price.GreaterThan(decimal.NewFromInt(1000000)) {
			warnings = append(warnings, fmt.Sprintf("Row %d: price must be between 1 and 1000000", line))
			continue
		}
		row.Price = price.Round(2)

		qtyStr := field(record, "quantity")
		if qtyStr == "" {
			warnings = append(warnings, fmt.Sprintf("Row %d: quantity is required", line))
			continue
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 0 || qty > 10000 {
			warnings = append(warnings, fmt.Sprintf("Row %d: quantity must be a number between 0 and 10000", line))
			continue
		}
		row.Quantity = qty

		if row.Barcode != "" && !utils.IsValidBarcode(row.Barcode) {
			warnings = append(warnings, fmt.Sprintf("Row %d: barcode must be 13 digits", line))
			continue
		}

		rows = append(rows, row)
	}

	return rows, warnings, nil
}

// ImportProducts upserts the valid rows of an uploaded CSV keyed by SKU.
// Everything runs in one transaction; a row that still fails at the database
// (for example a duplicate barcode) is rolled back to a savepoint and
// reported as a warning without aborting the rest of the file.
func (s *CSVService) ImportProducts(r io.Reader) (*ImportResult, error) {
	rows, warnings, err := ParseImportRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no valid rows found in CSV file")
	}

	result := &ImportResult{Warnings: warnings, Skipped: len(warnings)}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		categoryIDs := make(map[string]*uint)

		for _, row := range rows {
			categoryID, ok := categoryIDs[strings.ToLower(row.Category)]
			if !ok {
				categoryID = resolveCategoryID(tx, row.Category)
				categoryIDs[strings.ToLower(row.Category)] = categoryID
				if row.Category != "" && categoryID == nil {
					result.Warnings = append(result.Warnings,
						fmt.Sprintf("Row %d: unknown category %q, product left uncategorized", row.Line, row.Category))
				}
			}

			product := models.Product{
				Name:        row.Name,
				SKU:         row.SKU,
				Barcode:     row.Barcode,
				Price:       row.Price,
				Quantity:    row.Quantity,
				Description: row.Description,
				CategoryID:  categoryID,
			}
			if product.SKU == "" {
				product.SKU = utils.GenerateSKU(product.Name)
			}
			if product.Barcode == "" {
				product.Barcode = utils.RandomBarcode()
			}

			sp := fmt.Sprintf("row_%d", row.Line)
			tx.SavePoint(sp)

			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "sku"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "bar_code", "price", "quantity", "description", "category_id", "updated_at",
				}),
			}).Create(&product).Error
			if err != nil {
				tx.RollbackTo(sp)
				result.Skipped++
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Row %d: could not save product %q", row.Line, row.Name))
				continue
			}

			result.Imported++
		}

		// A file where every validated row still failed at the database is
		// reported through warnings, not as an outright failure.
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func resolveCategoryID(tx *gorm.DB, name string) *uint {
	if name == "" || strings.EqualFold(name, models.UncategorizedName) {
		return nil
	}
	var category models.Category
	if err := tx.Where("LOWER(name) = LOWER(?)", name).First(&category).Error; err != nil {
		return nil
	}
	return &category.ID
}
