package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/aaravmahajanofficial/safari-storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/safari-storefront/internal/errors"
	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/safari-storefront/internal/repositories"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("github.com/aaravmahajanofficial/safari-storefront/internal/services")

type CatalogService interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetConfig(ctx context.Context) (*models.StoreConfig, error)
}

type catalogService struct {
	repo     repository.CatalogRepository
	defaults Defaults

	products   *cache.Snapshot[[]models.Product]
	categories *cache.Snapshot[[]models.Category]
	config     *cache.Snapshot[models.StoreConfig]
}

// NewCatalogService builds the read-through gateway. Each service owns its own
// snapshots, so a fresh service starts with an empty cache.
func NewCatalogService(repo repository.CatalogRepository, defaults Defaults, opts ...cache.Option) CatalogService {
	return &catalogService{
		repo:       repo,
		defaults:   defaults.withFallbacks(),
		products:   cache.NewSnapshot[[]models.Product]("products", opts...),
		categories: cache.NewSnapshot[[]models.Category]("categories", opts...),
		config:     cache.NewSnapshot[models.StoreConfig]("config", opts...),
	}
}

func (s *catalogService) GetProducts(ctx context.Context) ([]models.Product, error) {

	products, err := s.products.Get(ctx, s.loadProducts)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *catalogService) loadProducts(ctx context.Context) ([]models.Product, error) {
	ctx, span := tracer.Start(ctx, "catalog.loadProducts")
	defer span.End()

	var (
		rows   []models.ProductRow
		images []models.ProductImageRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		rows, err = s.repo.FetchProducts(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		images, err = s.repo.FetchProductImages(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		slog.Error("Failed to load products from store", slog.String("error", err.Error()))
		return nil, err
	}

	span.SetAttributes(attribute.Int("catalog.products", len(rows)))

	return toProducts(rows, images, s.defaults), nil
}

func (s *catalogService) GetCategories(ctx context.Context) ([]models.Category, error) {

	categories, err := s.categories.Get(ctx, func(ctx context.Context) ([]models.Category, error) {
		ctx, span := tracer.Start(ctx, "catalog.loadCategories")
		defer span.End()

		rows, err := s.repo.FetchCategories(ctx)
		if err != nil {
			span.RecordError(err)
			slog.Error("Failed to load categories from store", slog.String("error", err.Error()))
			return nil, err
		}

		return toCategories(rows, s.defaults), nil
	})
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

func (s *catalogService) GetConfig(ctx context.Context) (*models.StoreConfig, error) {

	cfg, err := s.config.Get(ctx, func(ctx context.Context) (models.StoreConfig, error) {
		ctx, span := tracer.Start(ctx, "catalog.loadConfig")
		defer span.End()

		row, err := s.repo.FetchConfig(ctx)
		if err != nil {
			span.RecordError(err)
			slog.Error("Failed to load store configuration", slog.String("error", err.Error()))
			return models.StoreConfig{}, err
		}

		return toStoreConfig(row, s.defaults), nil
	})
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch configuration").WithError(err)
	}

	return &cfg, nil
}

// GetProductByID always reads the store; single products are not cached.
func (s *catalogService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {

	productID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, appErrors.BadRequestError("Invalid product id").WithError(err)
	}

	row, err := s.repo.FetchProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	images, err := s.repo.FetchProductImagesByID(ctx, productID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	gallery := make([]string, 0, len(images))
	for _, img := range images {
		gallery = append(gallery, img.URL.String)
	}

	product := toProduct(*row, gallery, s.defaults)

	return &product, nil
}
