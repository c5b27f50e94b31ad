package health_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/safari-storefront/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHealthHandler(t *testing.T) {

	t.Run("Success - Store reachable", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		h, err := health.NewHealthHandler("safari-storefront", db)
		require.NoError(t, err)

		// Act
		rr := httptest.NewRecorder()
		h.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"OK"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Store unavailable", func(t *testing.T) {
		// Arrange
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		h, err := health.NewHealthHandler("safari-storefront", db)
		require.NoError(t, err)

		// Act
		rr := httptest.NewRecorder()
		h.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "catalog-store")
	})
}
