package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)

	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *CatalogService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)

	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *CatalogService) GetConfig(ctx context.Context) (*models.StoreConfig, error) {
	args := m.Called(ctx)

	cfg, _ := args.Get(0).(*models.StoreConfig)
	return cfg, args.Error(1)
}
