package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/domain/cart"
	"shopcore/domain/catalog"
	"shopcore/domain/shared"
)

func TestFromDomainErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"cart not found", cart.NewCartNotFoundError("s-1"), CodeCartNotFound},
		{"item not found", cart.NewItemNotFoundError("i-1"), CodeCartItemNotFound},
		{"quantity out of range", cart.NewQuantityOutOfRangeError("quantity must be at most 100"), CodeQuantityOutOfRange},
		{"blank session", cart.NewInvalidSessionIDError(), CodeValidation},
		{"product not available", cart.NewProductNotAvailableError("p-1", 5, 2), CodeProductNotAvailable},
		{"product not found", catalog.NewProductNotFoundError("p-1"), CodeProductNotFound},
		{"category not found", catalog.NewCategoryNotFoundError("c-1"), CodeCategoryNotFound},
		{"insufficient stock", catalog.NewInsufficientStockError("p-1", 5, 2), CodeInsufficientStock},
		{"self reference", catalog.NewSelfReferenceError("c-1"), CodeCircularReference},
		{"circular reference", catalog.NewCircularReferenceError("c-1", "c-2"), CodeCircularReference},
		{"shared not found", shared.NewNotFoundError("product", "p-1"), CodeNotFound},
		{"shared validation", shared.NewValidationError("cart", "session_id", "blank"), CodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomainError(tc.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.code, appErr.Code)
			assert.True(t, Is(appErr, tc.code))
		})
	}
}

func TestFromDomainErrorCarriesDetails(t *testing.T) {
	appErr := FromDomainError(cart.NewProductNotAvailableError("p-1", 5, 2))

	require.NotNil(t, appErr.Details)
	assert.Equal(t, "p-1", appErr.Details["product_id"])
	assert.Equal(t, 5, appErr.Details["requested_quantity"])
	assert.Equal(t, 2, appErr.Details["available_stock"])
}

func TestFromDomainErrorHidesUnknownErrors(t *testing.T) {
	appErr := FromDomainError(fmt.Errorf("connection refused to 10.0.0.1"))

	assert.Equal(t, CodeInternal, appErr.Code)
	assert.Equal(t, "internal server error", appErr.Message)
	assert.NotContains(t, appErr.Message, "10.0.0.1")
}

func TestFromDomainErrorPassesThroughAppErrors(t *testing.T) {
	original := Validation("limit must be positive")
	assert.Same(t, original, FromDomainError(original))
	assert.Nil(t, FromDomainError(nil))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	wrapped := Wrap(cause, CodeInternal, "something failed")

	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "INTERNAL_ERROR")
}
