// internal/services/csv_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportRows(t *testing.T) {
	input := strings.Join([]string{
		"Name,SKU,Barcode,Price,Quantity,Description,Category",
		"Wireless Mouse,WIR-1024,4006381333931,29.99,150,Ergonomic mouse,Electronics",
		"Broken Row,,,not-a-price,10,,",
		"Desk Lamp,,,45.50,80,LED lamp,Home",
	}, "\n")

	rows, warnings, err := ParseImportRows(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Wireless Mouse", rows[0].Name)
	assert.Equal(t, "WIR-1024", rows[0].SKU)
	assert.Equal(t, "29.99", rows[0].Price.StringFixed(2))
	assert.Equal(t, 150, rows[0].Quantity)
	assert.Equal(t, "Electronics", rows[0].Category)
	assert.Equal(t, "Desk Lamp", rows[1].Name)

	// The header counts as row 1, so the bad data row is row 3.
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Row 3")
	assert.Contains(t, warnings[0], "price")
}

func TestParseImportRowsLineNumbersStartAtTwo(t *testing.T) {
	input := "Name,Price,Quantity\n,10.00,5\n"

	rows, warnings, err := ParseImportRows(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Row 2")
}

func TestParseImportRowsHeaderIsCaseInsensitive(t *testing.T) {
	input := "NAME,price,QUANTITY\nWidget,12.00,3\n"

	rows, warnings, err := ParseImportRows(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].Name)
	assert.Equal(t, 3, rows[0].Quantity)
}

func TestParseImportRowsReordersColumns(t *testing.T) {
	input := "Quantity,Name,Price\n7,Widget,12.00\n"

	rows, _, err := ParseImportRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].Name)
	assert.Equal(t, 7, rows[0].Quantity)
}

func TestParseImportRowsValidation(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		warning string
	}{
		{"missing price", "Widget,,5", "price is required"},
		{"price below minimum", "Widget,0.50,5", "between 1 and 1000000"},
		{"price above maximum", "Widget,2000000,5", "between 1 and 1000000"},
		{"missing quantity", "Widget,10.00,", "quantity is required"},
		{"negative quantity", "Widget,10.00,-1", "between 0 and 10000"},
		{"quantity above maximum", "Widget,10.00,10001", "between 0 and 10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "Name,Price,Quantity\n" + tt.row + "\n"
			rows, warnings, err := ParseImportRows(strings.NewReader(input))
			require.NoError(t, err)
			assert.Empty(t, rows)
			require.Len(t, warnings, 1)
			assert.Contains(t, warnings[0], tt.warning)
		})
	}
}

func TestParseImportRowsBadBarcode(t *testing.T) {
	input := "Name,Price,Quantity,Barcode\nWidget,10.00,5,12345\n"

	rows, warnings, err := ParseImportRows(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "13 digits")
}

func TestParseImportRowsMissingNameColumn(t *testing.T) {
	input := "Price,Quantity\n10.00,5\n"

	_, _, err := ParseImportRows(strings.NewReader(input))
	assert.Error(t, err)
}

func TestImportProductsFailsOnlyWhenNoRowValidates(t *testing.T) {
	// Validation happens before the transaction opens, so a file with zero
	// valid rows is rejected without touching the database.
	s := NewCSVService(nil)

	_, err := s.ImportProducts(strings.NewReader("Name,Price,Quantity\n,bad,x\n"))
	assert.Error(t, err)

	_, err = s.ImportProducts(strings.NewReader("Name,Price,Quantity\n"))
	assert.Error(t, err)
}

func TestExportFilename(t *testing.T) {
	name := ExportFilename()
	assert.Regexp(t, `^products_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
