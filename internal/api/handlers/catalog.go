package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/safari-storefront/internal/api/middleware"
	service "github.com/aaravmahajanofficial/safari-storefront/internal/services"
	"github.com/aaravmahajanofficial/safari-storefront/internal/utils/response"
)

// CatalogHandler serves the read-only storefront API. Successful payloads are
// written bare so browser clients can consume them without unwrapping.
type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.catalogService.GetProducts(r.Context())
		if err != nil {
			logger.Error("Failed to list products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Debug("Products served", slog.Int("count", len(products)))
		response.WriteJson(w, http.StatusOK, products)
	}
}

func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		product, err := h.catalogService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, product)
	}
}

func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		categories, err := h.catalogService.GetCategories(r.Context())
		if err != nil {
			logger.Error("Failed to list categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, categories)
	}
}

func (h *CatalogHandler) GetConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cfg, err := h.catalogService.GetConfig(r.Context())
		if err != nil {
			logger.Error("Failed to get store configuration", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, cfg)
	}
}
