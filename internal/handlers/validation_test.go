package handlers

import (
	"testing"

	"storefront/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorUsesJSONNamesAndMessages(t *testing.T) {
	v := NewValidator()
	short := "Go"
	err := v.Struct(&struct {
		Email          string  `json:"email" validate:"required,email"`
		Title          *string `json:"title" validate:"omitempty,min=3"`
		NationalNumber string  `json:"national_number" validate:"omitempty,nationalnumber"`
	}{Email: "nope", Title: &short, NationalNumber: "123"})

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.Validation, appErr.Kind)
	assert.Equal(t, []string{"Enter a valid email address."}, appErr.Fields["email"])
	assert.Equal(t, []string{"Ensure this field has at least 3 characters."}, appErr.Fields["title"])
	assert.Equal(t, []string{"National number must be exactly 10 digits."}, appErr.Fields["national_number"])
}

func TestIsNationalNumber(t *testing.T) {
	assert.True(t, isNationalNumber("0012345678"))
	assert.False(t, isNationalNumber("001234567"))
	assert.False(t, isNationalNumber("00123456x8"))
}

func TestPriceRejectsMoreThanTwoDecimals(t *testing.T) {
	v := NewValidator()
	type priced struct {
		Price *float64 `json:"price" validate:"required,gt=0,lt=10000,price"`
	}

	for _, ok := range []float64{3, 10.5, 12.25, 0.29, 9999.99} {
		assert.NoError(t, v.Struct(&priced{Price: &ok}), ok)
	}
	for _, bad := range []float64{1.234, 9999.999, 0.001} {
		var appErr *apperrors.Error
		require.ErrorAs(t, v.Struct(&priced{Price: &bad}), &appErr, bad)
		assert.Equal(t, []string{"Ensure that there are no more than 2 decimal places."}, appErr.Fields["price"])
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 400, StatusOf(apperrors.InvalidToken))
	assert.Equal(t, 409, StatusOf(apperrors.Conflict))
	assert.Equal(t, 500, StatusOf(apperrors.Internal))
}
