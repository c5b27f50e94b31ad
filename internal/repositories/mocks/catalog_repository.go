package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/safari-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

// CatalogRepository is a testify mock of repository.CatalogRepository.
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) FetchProducts(ctx context.Context) ([]models.ProductRow, error) {
	args := m.Called(ctx)

	rows, _ := args.Get(0).([]models.ProductRow)
	return rows, args.Error(1)
}

func (m *CatalogRepository) FetchProductImages(ctx context.Context) ([]models.ProductImageRow, error) {
	args := m.Called(ctx)

	rows, _ := args.Get(0).([]models.ProductImageRow)
	return rows, args.Error(1)
}

func (m *CatalogRepository) FetchCategories(ctx context.Context) ([]models.CategoryRow, error) {
	args := m.Called(ctx)

	rows, _ := args.Get(0).([]models.CategoryRow)
	return rows, args.Error(1)
}

func (m *CatalogRepository) FetchConfig(ctx context.Context) (*models.ConfigRow, error) {
	args := m.Called(ctx)

	row, _ := args.Get(0).(*models.ConfigRow)
	return row, args.Error(1)
}

func (m *CatalogRepository) FetchProductByID(ctx context.Context, id int64) (*models.ProductRow, error) {
	args := m.Called(ctx, id)

	row, _ := args.Get(0).(*models.ProductRow)
	return row, args.Error(1)
}

func (m *CatalogRepository) FetchProductImagesByID(ctx context.Context, id int64) ([]models.ProductImageRow, error) {
	args := m.Called(ctx, id)

	rows, _ := args.Get(0).([]models.ProductImageRow)
	return rows, args.Error(1)
}
