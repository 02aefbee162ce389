package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/catalogkit/catalog-admin-service/internal/assets"
	assetMocks "github.com/catalogkit/catalog-admin-service/internal/assets/mocks"
	appErrors "github.com/catalogkit/catalog-admin-service/internal/errors"
	"github.com/catalogkit/catalog-admin-service/internal/models"
	repository "github.com/catalogkit/catalog-admin-service/internal/repositories"
	"github.com/catalogkit/catalog-admin-service/internal/repositories/mocks"
	service "github.com/catalogkit/catalog-admin-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCategoryService(t *testing.T) (service.CategoryService, *mocks.CategoryRepository, *assetMocks.Store) {
	t.Helper()

	mockRepo := new(mocks.CategoryRepository)
	mockStore := new(assetMocks.Store)

	return service.NewCategoryService(mockRepo, mockStore), mockRepo, mockStore
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Without Image", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, mockStore := newCategoryService(t)

		req := &models.CreateCategoryRequest{Name: "Shoes", IsActive: true}

		mockRepo.On("ExistsByName", mock.Anything, "Shoes", int64(0)).Return(false, nil).Once()
		mockRepo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
			return c.Name == "Shoes" && c.IsActive && c.ImageKey == ""
		})).Return(nil).Once()

		// Act
		category, err := categoryService.CreateCategory(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, category)
		assert.Equal(t, "Shoes", category.Name)
		mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - With Image", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, mockStore := newCategoryService(t)

		req := &models.CreateCategoryRequest{
			Name:     "Shoes",
			IsActive: true,
			Image:    &models.ImageUpload{Filename: "shoes.png", ContentType: "image/png", Data: []byte{1, 2, 3}},
		}

		mockRepo.On("ExistsByName", mock.Anything, "Shoes", int64(0)).Return(false, nil).Once()
		mockStore.On("Put", mock.Anything, assets.CategoryImages, "shoes.png", "image/png", []byte{1, 2, 3}).Return("abc_shoes.png", nil).Once()
		mockRepo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
			return c.ImageKey == "abc_shoes.png"
		})).Return(nil).Once()

		// Act
		category, err := categoryService.CreateCategory(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "abc_shoes.png", category.ImageKey)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Name Is Case Insensitive", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, mockStore := newCategoryService(t)

		req := &models.CreateCategoryRequest{
			Name:  "shoes",
			Image: &models.ImageUpload{Filename: "shoes.png", Data: []byte{1, 2, 3}},
		}

		mockRepo.On("ExistsByName", mock.Anything, "shoes", int64(0)).Return(true, nil).Once()

		// Act
		category, err := categoryService.CreateCategory(ctx, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, category)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)

		// The uniqueness check happens before any asset write.
		mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Blank Name", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, _ := newCategoryService(t)

		// Act
		category, err := categoryService.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "   "})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, category)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockRepo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Storage Error Aborts Create", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, mockStore := newCategoryService(t)

		req := &models.CreateCategoryRequest{
			Name:  "Shoes",
			Image: &models.ImageUpload{Filename: "shoes.png", Data: []byte{1, 2, 3}},
		}

		mockRepo.On("ExistsByName", mock.Anything, "Shoes", int64(0)).Return(false, nil).Once()
		mockStore.On("Put", mock.Anything, assets.CategoryImages, "shoes.png", "", []byte{1, 2, 3}).Return("", appErrors.StorageError("disk full")).Once()

		// Act
		category, err := categoryService.CreateCategory(ctx, req)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, category)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeStorage, appErr.Code)
		mockRepo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	testID := int64(7)

	t.Run("Success - Name Change With Self Exclusion", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, _ := newCategoryService(t)

		existing := &models.Category{ID: testID, Name: "Shoes", IsActive: true}
		newName := "Sneakers"

		mockRepo.On("GetCategoryByID", mock.Anything, testID).Return(existing, nil).Once()
		mockRepo.On("ExistsByName", mock.Anything, "Sneakers", testID).Return(false, nil).Once()
		mockRepo.On("UpdateCategory", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
			return c.ID == testID && c.Name == "Sneakers"
		})).Return(nil).Once()

		// Act
		category, err := categoryService.UpdateCategory(ctx, testID, &models.UpdateCategoryRequest{Name: &newName})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Sneakers", category.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - New Image Replaces Old Asset", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, mockStore := newCategoryService(t)

		existing := &models.Category{ID: testID, Name: "Shoes", ImageKey: "old_key.png"}

		mockRepo.On("GetCategoryByID", mock.Anything, testID).Return(existing, nil).Once()
		mockStore.On("Delete", mock.Anything, assets.CategoryImages, "old_key.png").Return(nil).Once()
		mockStore.On("Put", mock.Anything, assets.CategoryImages, "new.png", "image/png", []byte{9}).Return("new_key.png", nil).Once()
		mockRepo.On("UpdateCategory", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
			return c.ImageKey == "new_key.png"
		})).Return(nil).Once()

		req := &models.UpdateCategoryRequest{
			Image: &models.ImageUpload{Filename: "new.png", ContentType: "image/png", Data: []byte{9}},
		}

		// Act
		category, err := categoryService.UpdateCategory(ctx, testID, req)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "new_key.png", category.ImageKey)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Success - No New Image Preserves Reference", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, mockStore := newCategoryService(t)

		existing := &models.Category{ID: testID, Name: "Shoes", ImageKey: "keep_me.png"}
		isActive := false

		mockRepo.On("GetCategoryByID", mock.Anything, testID).Return(existing, nil).Once()
		mockRepo.On("UpdateCategory", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
			return c.ImageKey == "keep_me.png" && !c.IsActive
		})).Return(nil).Once()

		// Act
		category, err := categoryService.UpdateCategory(ctx, testID, &models.UpdateCategoryRequest{IsActive: &isActive})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "keep_me.png", category.ImageKey)
		mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, _ := newCategoryService(t)

		mockRepo.On("GetCategoryByID", mock.Anything, testID).Return(nil, repository.ErrNotFound).Once()

		// Act
		category, err := categoryService.UpdateCategory(ctx, testID, &models.UpdateCategoryRequest{})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, category)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Duplicate Name On Rename", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, _ := newCategoryService(t)

		existing := &models.Category{ID: testID, Name: "Shoes"}
		newName := "Bags"

		mockRepo.On("GetCategoryByID", mock.Anything, testID).Return(existing, nil).Once()
		mockRepo.On("ExistsByName", mock.Anything, "Bags", testID).Return(true, nil).Once()

		// Act
		category, err := categoryService.UpdateCategory(ctx, testID, &models.UpdateCategoryRequest{Name: &newName})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, category)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		mockRepo.AssertNotCalled(t, "UpdateCategory", mock.Anything, mock.Anything)
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	testID := int64(3)

	t.Run("Success - Row Deleted Before Asset", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, mockStore := newCategoryService(t)

		existing := &models.Category{ID: testID, Name: "Shoes", ImageKey: "img.png"}

		mockRepo.On("GetCategoryByID", mock.Anything, testID).Return(existing, nil).Once()
		mockRepo.On("DeleteCategory", mock.Anything, testID).Return(nil).Once()
		mockStore.On("Delete", mock.Anything, assets.CategoryImages, "img.png").Return(nil).Once()

		// Act
		err := categoryService.DeleteCategory(ctx, testID)

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Failure - Row Delete Fails, Asset Untouched", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, mockStore := newCategoryService(t)

		existing := &models.Category{ID: testID, Name: "Shoes", ImageKey: "img.png"}

		mockRepo.On("GetCategoryByID", mock.Anything, testID).Return(existing, nil).Once()
		mockRepo.On("DeleteCategory", mock.Anything, testID).Return(errors.New("db down")).Once()

		// Act
		err := categoryService.DeleteCategory(ctx, testID)

		// Assert
		assert.Error(t, err)
		mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - No Image Skips Asset Delete", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, mockStore := newCategoryService(t)

		existing := &models.Category{ID: testID, Name: "Shoes"}

		mockRepo.On("GetCategoryByID", mock.Anything, testID).Return(existing, nil).Once()
		mockRepo.On("DeleteCategory", mock.Anything, testID).Return(nil).Once()

		// Act
		err := categoryService.DeleteCategory(ctx, testID)

		// Assert
		assert.NoError(t, err)
		mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, _ := newCategoryService(t)

		expected := []*models.Category{
			{ID: 1, Name: "Shoes"},
			{ID: 2, Name: "Bags"},
		}

		mockRepo.On("ListCategories", mock.Anything).Return(expected, nil).Once()

		// Act
		categories, err := categoryService.ListCategories(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, expected, categories)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		categoryService, mockRepo, _ := newCategoryService(t)

		mockRepo.On("ListCategories", mock.Anything).Return(nil, errors.New("db error")).Once()

		// Act
		categories, err := categoryService.ListCategories(ctx)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, categories)

		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}
