package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/safari-storefront/internal/api/middleware"
)

// NewRequest builds a handler test request carrying a silent request logger
// and the given path values, as the router and Logging middleware would.
func NewRequest(method, target string, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, nil)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
