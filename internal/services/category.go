package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/catalogkit/catalog-admin-service/internal/assets"
	apperrors "github.com/catalogkit/catalog-admin-service/internal/errors"
	"github.com/catalogkit/catalog-admin-service/internal/models"
	repository "github.com/catalogkit/catalog-admin-service/internal/repositories"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	store assets.Store
}

func NewCategoryService(repo repository.CategoryRepository, store assets.Store) CategoryService {
	return &categoryService{repo: repo, store: store}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ValidationError("Category name is required")
	}

	// Uniqueness is checked before any asset write so a rejected create
	// leaves nothing behind.
	exists, err := s.repo.ExistsByName(ctx, name, 0)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to check category name").WithError(err)
	}

	if exists {
		return nil, apperrors.DuplicateEntryError("Category name already exists")
	}

	category := &models.Category{
		Name:     name,
		IsActive: req.IsActive,
	}

	if req.Image != nil {
		key, err := s.store.Put(ctx, assets.CategoryImages, req.Image.Filename, req.Image.ContentType, req.Image.Data)
		if err != nil {
			return nil, err
		}

		category.ImageKey = key
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if category.ImageKey != "" {
			// Known limitation: no compensating delete, the asset is orphaned.
			slog.Warn("category insert failed after asset write, asset orphaned",
				slog.String("asset_key", category.ImageKey))
		}

		return nil, apperrors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundError("Category not found")
		}

		return nil, apperrors.DatabaseError("Failed to get category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundError("Category not found")
		}

		return nil, apperrors.DatabaseError("Failed to get category").WithError(err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.ValidationError("Category name is required")
		}

		exists, err := s.repo.ExistsByName(ctx, name, id)
		if err != nil {
			return nil, apperrors.DatabaseError("Failed to check category name").WithError(err)
		}

		if exists {
			return nil, apperrors.DuplicateEntryError("Category name already exists")
		}

		category.Name = name
	}

	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	// A new upload replaces the current asset; without one the existing
	// reference is left untouched.
	if req.Image != nil {
		if category.ImageKey != "" {
			if err := s.store.Delete(ctx, assets.CategoryImages, category.ImageKey); err != nil {
				return nil, err
			}
		}

		key, err := s.store.Put(ctx, assets.CategoryImages, req.Image.Filename, req.Image.ContentType, req.Image.Data)
		if err != nil {
			return nil, err
		}

		category.ImageKey = key
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, apperrors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

// DeleteCategory removes the row first and the asset second, so a failed row
// delete never leaves the database referencing a missing file.
func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFoundError("Category not found")
		}

		return apperrors.DatabaseError("Failed to get category").WithError(err)
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFoundError("Category not found")
		}

		return apperrors.DatabaseError("Failed to delete category").WithError(err)
	}

	if category.ImageKey != "" {
		if err := s.store.Delete(ctx, assets.CategoryImages, category.ImageKey); err != nil {
			return err
		}
	}

	return nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}
