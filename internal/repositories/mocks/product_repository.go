package mocks

import (
	"context"

	"github.com/catalogkit/catalog-admin-service/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int64, error) {
	args := m.Called(ctx, page, size)

	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) SearchProducts(ctx context.Context, page, size int, term string) ([]*models.Product, int64, error) {
	args := m.Called(ctx, page, size, term)

	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*models.Product), args.Get(1).(int64), args.Error(2)
}
