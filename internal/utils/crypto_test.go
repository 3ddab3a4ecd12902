// internal/utils/crypto_test.go
package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("Wireless Mouse")
	assert.True(t, strings.HasPrefix(sku, "WIR-"))
	assert.Len(t, sku, 8)

	// Short names are padded to a three letter prefix.
	short := GenerateSKU("ab")
	assert.True(t, strings.HasPrefix(short, "ABX-"))
	assert.Len(t, short, 8)
}

func TestGenerateSKUMultibyteName(t *testing.T) {
	sku := GenerateSKU("Ärmel")
	assert.True(t, utf8.ValidString(sku))
	assert.True(t, strings.HasPrefix(sku, "ÄRM-"))

	padded := GenerateSKU("é")
	assert.True(t, utf8.ValidString(padded))
	assert.True(t, strings.HasPrefix(padded, "ÉXX-"))
}

func TestRandomBarcode(t *testing.T) {
	barcode := RandomBarcode()
	assert.Len(t, barcode, 13)
	assert.True(t, IsValidBarcode(barcode))
}

func TestIsValidBarcode(t *testing.T) {
	assert.True(t, IsValidBarcode("4006381333931"))
	assert.False(t, IsValidBarcode(""))
	assert.False(t, IsValidBarcode("123456789012"))
	assert.False(t, IsValidBarcode("12345678901234"))
	assert.False(t, IsValidBarcode("40063813339ab"))
}

func TestGenerateRandomString(t *testing.T) {
	s, err := GenerateRandomString(32)
	assert.NoError(t, err)
	assert.Len(t, s, 32)

	other, err := GenerateRandomString(32)
	assert.NoError(t, err)
	assert.NotEqual(t, s, other)
}
