package mocks

import (
	"context"

	"github.com/catalogkit/catalog-admin-service/internal/models"
	"github.com/stretchr/testify/mock"
)

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *CategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *CategoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *CategoryRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)

	return args.Bool(0), args.Error(1)
}
