// Package storefront is the client side of the Safari catalog API.
package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "github.com/aaravmahajanofficial/safari-storefront/internal/errors"
	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/aaravmahajanofficial/safari-storefront/internal/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "http://127.0.0.1:3000/api"
	DefaultTimeout = 8 * time.Second
	DefaultAppName = "Safari Web"
)

// Client reads the catalog API. Every call is bounded by the client timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get fetches path into dest. Transport failures and non-2xx answers become
// retryable THIRD_PARTY_ERRORs; 404 becomes NOT_FOUND.
func (c *Client) get(ctx context.Context, path string, dest any, what string) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return appErrors.InternalError("Failed to build request").WithError(err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching", slog.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Catalog request failed", slog.String("url", req.URL.String()), slog.String("error", err.Error()))
		return appErrors.ThirdPartyError(fmt.Sprintf("Failed to fetch %s", what)).WithError(err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return appErrors.NotFoundError(fmt.Sprintf("%s not found", what))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		c.logger.Warn("Catalog request rejected", slog.String("url", req.URL.String()), slog.Int("status", resp.StatusCode))
		return appErrors.ThirdPartyError(fmt.Sprintf("Failed to fetch %s", what)).
			WithDetail(fmt.Sprintf("status %d", resp.StatusCode))
	}

	if err := utils.DecodeJSONResponse(resp, dest); err != nil {
		return appErrors.ThirdPartyError(fmt.Sprintf("Failed to fetch %s", what)).WithError(err)
	}

	return nil
}

func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product

	if err := c.get(ctx, "/products", &products, "products"); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product

	if err := c.get(ctx, "/products/"+url.PathEscape(id), &product, "product"); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	if err := c.get(ctx, "/categories", &categories, "categories"); err != nil {
		return nil, err
	}

	return categories, nil
}

// GetConfig never fails: any error yields the default configuration.
func (c *Client) GetConfig(ctx context.Context) models.StoreConfig {
	var cfg models.StoreConfig

	if err := c.get(ctx, "/config", &cfg, "configuration"); err != nil {
		c.logger.Warn("Config fetch failed, using default", slog.String("error", err.Error()))
		return models.StoreConfig{AppName: DefaultAppName, WhatsappNumber: ""}
	}

	return cfg
}
