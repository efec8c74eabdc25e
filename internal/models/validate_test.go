package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Product(t *testing.T) {
	valid := Product{ID: 1, Name: "Mug", Price: 120, Images: []Image{{URL: "https://cdn/x.png"}}}
	require.NoError(t, Validate(valid))
	require.NoError(t, Validate(&valid))

	missingName := valid
	missingName.Name = ""
	assert.Error(t, Validate(missingName))

	badImage := valid
	badImage.Images = []Image{{PublicID: "no-url"}}
	assert.Error(t, Validate(badImage))
}

func TestValidate_SliceReportsIndex(t *testing.T) {
	categories := []Category{{ID: 1, Name: "Shoes"}, {ID: 0, Name: "Broken"}}

	err := Validate(categories)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[1]")
}

func TestValidate_NestedCartProduct(t *testing.T) {
	cart := Cart{Items: []CartLine{{ID: 1, Quantity: 1, Product: Product{ID: 0}}}}
	assert.Error(t, Validate(cart))
}

func TestValidate_UserRole(t *testing.T) {
	assert.NoError(t, Validate(User{ID: 3, Email: "a@b.c", Role: RoleAdmin}))
	assert.Error(t, Validate(User{ID: 3, Email: "a@b.c", Role: "root"}))
}

func TestValidate_OtherKindsPass(t *testing.T) {
	var nilUser *User
	assert.NoError(t, Validate(nilUser))
	assert.NoError(t, Validate(42))
	assert.NoError(t, Validate(map[string]any{"x": 1}))
}

func TestValidate_OrderKeepsUnknownStatus(t *testing.T) {
	// Unknown statuses are accepted here and rendered with a neutral color.
	order := Order{Status: "ON_HOLD", Items: []OrderItem{{Name: "Mug", AmountCents: 100, Quantity: 1}}}
	assert.NoError(t, Validate(order))
}

func TestUser_IsAdmin(t *testing.T) {
	var nobody *User
	assert.False(t, nobody.IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}
