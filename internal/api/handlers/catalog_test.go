package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/safari-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/safari-storefront/internal/errors"
	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/aaravmahajanofficial/safari-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/safari-storefront/internal/testutils"
	"github.com/aaravmahajanofficial/safari-storefront/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRequest(method, target string) *http.Request {
	return testutils.NewRequest(method, target, nil)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *response.ErrorResponse {
	t.Helper()

	var body response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)

	return body.Error
}

func TestListProducts(t *testing.T) {

	t.Run("Success - Bare product list", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.CatalogService)
		h := handlers.NewCatalogHandler(mockService)

		products := []models.Product{
			{ID: "1", Name: "Cámara IP", Price: 45.5, Stock: 3, Images: []string{"a.jpg"}},
			{ID: "2", Name: "Micro SD 64GB", Price: 12, Images: []string{"b.jpg"}},
		}
		mockService.On("GetProducts", mock.Anything).Return(products, nil).Once()

		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/products")

		// Act
		h.ListProducts().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var got []models.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, products, got)
		mockService.AssertExpectations(t)
	})

	t.Run("Success - Empty catalog is an empty array", func(t *testing.T) {
		mockService := new(mocks.CatalogService)
		h := handlers.NewCatalogHandler(mockService)
		mockService.On("GetProducts", mock.Anything).Return([]models.Product{}, nil).Once()

		rr := httptest.NewRecorder()
		h.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/products"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("Failure - Store error", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.CatalogService)
		h := handlers.NewCatalogHandler(mockService)
		mockService.On("GetProducts", mock.Anything).
			Return(nil, appErrors.DatabaseError("Failed to fetch products").WithError(errors.New("timeout"))).Once()

		rr := httptest.NewRecorder()

		// Act
		h.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/products"))

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		errBody := decodeError(t, rr)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, errBody.Code)
		assert.Equal(t, "Failed to fetch products", errBody.Message)
		assert.NotContains(t, rr.Body.String(), "timeout")
	})
}

func TestGetProduct(t *testing.T) {

	t.Run("Success - Product found", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.CatalogService)
		h := handlers.NewCatalogHandler(mockService)
		product := &models.Product{ID: "7", Name: "Cámara IP", Images: []string{"a.jpg"}}
		mockService.On("GetProductByID", mock.Anything, "7").Return(product, nil).Once()

		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/products/{id}", h.GetProduct())
		rr := httptest.NewRecorder()

		// Act
		mux.ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/products/7"))

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Cámara IP", got.Name)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockService := new(mocks.CatalogService)
		h := handlers.NewCatalogHandler(mockService)
		mockService.On("GetProductByID", mock.Anything, "99").Return(nil, appErrors.NotFoundError("Product not found")).Once()

		rr := httptest.NewRecorder()
		req := testutils.NewRequest(http.MethodGet, "/api/products/99", map[string]string{"id": "99"})

		h.GetProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, appErrors.ErrCodeNotFound, decodeError(t, rr).Code)
	})
}

func TestListCategories(t *testing.T) {
	mockService := new(mocks.CatalogService)
	h := handlers.NewCatalogHandler(mockService)

	categories := []models.Category{{ID: "1", Name: "Cámaras", Image: "cat.jpg"}}
	mockService.On("GetCategories", mock.Anything).Return(categories, nil).Once()

	rr := httptest.NewRecorder()
	h.ListCategories().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/categories"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":"1","name":"Cámaras","image":"cat.jpg"}]`, rr.Body.String())
	mockService.AssertExpectations(t)
}

func TestGetConfig(t *testing.T) {

	t.Run("Success - Config payload", func(t *testing.T) {
		mockService := new(mocks.CatalogService)
		h := handlers.NewCatalogHandler(mockService)
		mockService.On("GetConfig", mock.Anything).
			Return(&models.StoreConfig{AppName: "Safari Tech", WhatsappNumber: "593991234567"}, nil).Once()

		rr := httptest.NewRecorder()
		h.GetConfig().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/config"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"appName":"Safari Tech","whatsappNumber":"593991234567"}`, rr.Body.String())
	})

	t.Run("Failure - Non application error", func(t *testing.T) {
		mockService := new(mocks.CatalogService)
		h := handlers.NewCatalogHandler(mockService)
		mockService.On("GetConfig", mock.Anything).Return(nil, errors.New("unexpected")).Once()

		rr := httptest.NewRecorder()
		h.GetConfig().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/config"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, appErrors.ErrCodeInternal, decodeError(t, rr).Code)
	})
}
