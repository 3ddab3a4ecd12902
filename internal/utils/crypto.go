// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateVerificationCode produces an opaque token for email verification
// and password reset links.
func GenerateVerificationCode() (string, error) {
	return GenerateRandomString(32)
}

func randomDigits(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String()
}

// RandomBarcode generates a 13-digit numeric barcode for products that do
// not supply one.
func RandomBarcode() string {
	return randomDigits(13)
}

// IsValidBarcode reports whether s is exactly 13 ASCII digits.
func IsValidBarcode(s string) bool {
	if len(s) != 13 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GenerateSKU derives a stock-keeping unit from the product name: the first
// three characters uppercased plus a random numeric suffix. Short names are
// padded so the prefix is always three characters. The prefix is sliced by
// rune so multibyte names stay valid UTF-8.
func GenerateSKU(name string) string {
	runes := []rune(strings.ToUpper(name))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	for len(runes) < 3 {
		runes = append(runes, 'X')
	}

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("%s-%04d", string(runes), suffix)
}
