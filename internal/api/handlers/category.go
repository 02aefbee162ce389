package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	apperrors "github.com/catalogkit/catalog-admin-service/internal/errors"
	"github.com/catalogkit/catalog-admin-service/internal/models"
	service "github.com/catalogkit/catalog-admin-service/internal/services"
	"github.com/catalogkit/catalog-admin-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
	sanitizer       *bluemonday.Policy
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator.New(),
		sanitizer:       bluemonday.StrictPolicy(),
	}
}

func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			response.Error(w, apperrors.BadRequestError("Invalid multipart form").WithError(err))
			return
		}

		isActive, err := formBool(r, "is_active")
		if err != nil {
			response.Error(w, err)
			return
		}

		req := models.CreateCategoryRequest{
			Name: h.sanitizer.Sanitize(r.FormValue("name")),
		}
		if isActive != nil {
			req.IsActive = *isActive
		}

		if err := h.validator.Struct(req); err != nil {
			response.ValidationError(w, err.(validator.ValidationErrors))
			return
		}

		image, err := readImageUpload(r, "image")
		if err != nil {
			response.Error(w, err)
			return
		}

		req.Image = image

		category, err := h.categoryService.CreateCategory(r.Context(), &req)
		if err != nil {
			slog.Error("Error during category creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Category created successfully", slog.Int64("categoryId", category.ID))
		response.Success(w, http.StatusCreated, category)

	}
}

func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		category, err := h.categoryService.GetCategoryByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)

	}
}

func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			response.Error(w, apperrors.BadRequestError("Invalid multipart form").WithError(err))
			return
		}

		req := models.UpdateCategoryRequest{}

		if name, ok := formString(r, "name"); ok {
			clean := h.sanitizer.Sanitize(name)
			req.Name = &clean
		}

		isActive, err := formBool(r, "is_active")
		if err != nil {
			response.Error(w, err)
			return
		}

		req.IsActive = isActive

		if err := h.validator.Struct(req); err != nil {
			response.ValidationError(w, err.(validator.ValidationErrors))
			return
		}

		image, err := readImageUpload(r, "image")
		if err != nil {
			response.Error(w, err)
			return
		}

		req.Image = image

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			slog.Error("Error during category update", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Category updated successfully", slog.Int64("categoryId", category.ID))
		response.Success(w, http.StatusOK, category)

	}
}

func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			slog.Error("Error during category deletion", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Category deleted successfully", slog.Int64("categoryId", id))
		response.Success(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Category %d deleted", id)})

	}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.categoryService.ListCategories(r.Context())
		if err != nil {
			slog.Error("Failed to fetch categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)

	}
}
