package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/catalogkit/catalog-admin-service/internal/errors"
	"github.com/catalogkit/catalog-admin-service/internal/models"
	service "github.com/catalogkit/catalog-admin-service/internal/services"
	"github.com/catalogkit/catalog-admin-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
	sanitizer      *bluemonday.Policy
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		sanitizer:      bluemonday.StrictPolicy(),
	}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			response.Error(w, apperrors.BadRequestError("Invalid multipart form").WithError(err))
			return
		}

		categoryID, err := formInt64(r, "category_id")
		if err != nil {
			response.Error(w, err)
			return
		}

		price, err := formDecimal(r, "price")
		if err != nil {
			response.Error(w, err)
			return
		}

		discount, err := formInt(r, "discount")
		if err != nil {
			response.Error(w, err)
			return
		}

		stock, err := formInt(r, "stock")
		if err != nil {
			response.Error(w, err)
			return
		}

		isActive, err := formBool(r, "is_active")
		if err != nil {
			response.Error(w, err)
			return
		}

		req := models.CreateProductRequest{
			Title:       h.sanitizer.Sanitize(r.FormValue("title")),
			Description: h.sanitizer.Sanitize(r.FormValue("description")),
		}

		if categoryID != nil {
			req.CategoryID = *categoryID
		}
		if price != nil {
			req.Price = *price
		}
		if discount != nil {
			req.Discount = *discount
		}
		if stock != nil {
			req.Stock = *stock
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

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			slog.Error("Error during product creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Product created successfully", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusCreated, product)

	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)

	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
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

		req := models.UpdateProductRequest{}

		if title, ok := formString(r, "title"); ok {
			clean := h.sanitizer.Sanitize(title)
			req.Title = &clean
		}

		if description, ok := formString(r, "description"); ok {
			clean := h.sanitizer.Sanitize(description)
			req.Description = &clean
		}

		if req.CategoryID, err = formInt64(r, "category_id"); err != nil {
			response.Error(w, err)
			return
		}

		if req.Price, err = formDecimal(r, "price"); err != nil {
			response.Error(w, err)
			return
		}

		if req.Discount, err = formInt(r, "discount"); err != nil {
			response.Error(w, err)
			return
		}

		if req.Stock, err = formInt(r, "stock"); err != nil {
			response.Error(w, err)
			return
		}

		if req.IsActive, err = formBool(r, "is_active"); err != nil {
			response.Error(w, err)
			return
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

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			slog.Error("Error during product update", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Product updated successfully", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusOK, product)

	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := pathID(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			slog.Error("Error during product deletion", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Product deleted successfully", slog.Int64("productId", id))
		response.Success(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Product %d deleted", id)})

	}
}

// ListProducts serves GET /products?page=0&pageSize=10&ch=term; ch filters by
// title or category name, like the admin listing it replaces.
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
		term := r.URL.Query().Get("ch")

		var result *models.Page[*models.Product]
		var err error

		if term != "" {
			result, err = h.productService.SearchProducts(r.Context(), page, pageSize, term)
		} else {
			result, err = h.productService.ListProducts(r.Context(), page, pageSize)
		}

		if err != nil {
			slog.Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)

	}
}
