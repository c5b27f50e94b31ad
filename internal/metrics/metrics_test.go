package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	// Arrange
	route := "GET /api/products/{id}"
	h := Route(route, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	// Act
	for _, path := range []string{"/api/products/1", "/api/products/2"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	// Assert
	assert.Equal(t, float64(2), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("404", http.MethodGet, route)))
	assert.Equal(t, float64(0), testutil.ToFloat64(httpRequestsInFlight))
}

func TestHandlerExposesRegistry(t *testing.T) {
	rr := httptest.NewRecorder()

	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_in_flight")
}
