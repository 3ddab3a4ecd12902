// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrongPassword(t *testing.T) {
	type req struct {
		Password string `validate:"strong_password"`
	}

	assert.NoError(t, ValidateStruct(req{Password: "Abcdef12"}))
	assert.Error(t, ValidateStruct(req{Password: "short1A"}))
	assert.Error(t, ValidateStruct(req{Password: "alllowercase1"}))
	assert.Error(t, ValidateStruct(req{Password: "ALLUPPERCASE1"}))
	assert.Error(t, ValidateStruct(req{Password: "NoNumbersHere"}))
}

func TestGetValidationErrors(t *testing.T) {
	type req struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := ValidateStruct(req{Email: "not-an-email"})
	assert.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "Name is required", errs[0].Message)
	assert.Equal(t, "Invalid email format", errs[1].Message)
}
