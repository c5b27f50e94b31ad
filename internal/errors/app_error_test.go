package errors_test

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/safari-storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("Success - Wraps cause", func(t *testing.T) {
		cause := stdErrors.New("connection refused")

		err := appErrors.DatabaseError("Failed to fetch products").WithError(cause)

		assert.Equal(t, "Failed to fetch products", err.Error())
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	})

	t.Run("Success - IsAppError through wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading catalog: %w", appErrors.NotFoundError("Product not found").WithDetail("id=7"))

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "id=7", appErr.Detail)
		assert.True(t, appErrors.IsNotFound(err))
	})

	t.Run("Failure - Plain error", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(stdErrors.New("boom"))
		assert.False(t, ok)
		assert.Nil(t, appErr)
		assert.False(t, appErrors.IsNotFound(stdErrors.New("boom")))
	})

	t.Run("Success - Status codes", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, appErrors.BadRequestError("x").StatusCode)
		assert.Equal(t, http.StatusBadRequest, appErrors.ValidationError("x").StatusCode)
		assert.Equal(t, http.StatusBadGateway, appErrors.ThirdPartyError("x").StatusCode)
		assert.Equal(t, http.StatusInternalServerError, appErrors.InternalError("x").StatusCode)
	})
}
