// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("Str0ngPass"))

	assert.NotEqual(t, "Str0ngPass", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("Str0ngPass"))
	assert.Error(t, user.CheckPassword("wrong"))
	assert.Error(t, user.CheckPassword(""))
}

func TestCategoryIsSentinel(t *testing.T) {
	sentinel := Category{Name: UncategorizedName}
	assert.True(t, sentinel.IsSentinel())

	regular := Category{Name: "Electronics"}
	assert.False(t, regular.IsSentinel())

	lower := Category{Name: "uncategorized"}
	assert.False(t, lower.IsSentinel())
}

func TestProductCategoryName(t *testing.T) {
	withCategory := Product{Category: &Category{Name: "Electronics"}}
	assert.Equal(t, "Electronics", withCategory.CategoryName())

	without := Product{}
	assert.Equal(t, UncategorizedName, without.CategoryName())
}

func TestStockStatusValid(t *testing.T) {
	assert.True(t, StockStatusIn.Valid())
	assert.True(t, StockStatusLow.Valid())
	assert.True(t, StockStatusOut.Valid())
	assert.False(t, StockStatus("plenty").Valid())
	assert.False(t, StockStatus("").Valid())
}
