package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/catalogkit/catalog-admin-service/internal/assets"
	"github.com/catalogkit/catalog-admin-service/internal/cache"
	apperrors "github.com/catalogkit/catalog-admin-service/internal/errors"
	"github.com/catalogkit/catalog-admin-service/internal/models"
	repository "github.com/catalogkit/catalog-admin-service/internal/repositories"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, page, size int) (*models.Page[*models.Product], error)
	SearchProducts(ctx context.Context, page, size int, term string) (*models.Page[*models.Product], error)
}

type productService struct {
	repo  repository.ProductRepository
	store assets.Store
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, store assets.Store, productCache cache.Cache) ProductService {
	return &productService{repo: repo, store: store, cache: productCache}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Stock:       req.Stock,
		Image:       models.DefaultImage,
		IsActive:    req.IsActive,
	}
	product.DeriveDiscountPrice()

	// Without an upload the sentinel stays and the store is never touched.
	if req.Image != nil {
		key, err := s.store.Put(ctx, assets.ProductImages, req.Image.Filename, req.Image.ContentType, req.Image.Data)
		if err != nil {
			return nil, err
		}

		product.Image = key
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if product.Image != models.DefaultImage {
			// Known limitation: no compensating delete, the asset is orphaned.
			slog.Warn("product insert failed after asset write, asset orphaned",
				slog.String("asset_key", product.Image))
		}

		return nil, apperrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	cached := &models.Product{}

	found, err := s.cache.Get(ctx, cacheKey, cached)
	if err != nil {
		slog.Warn("product cache lookup failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	if found {
		return cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundError("Product not found")
		}

		return nil, apperrors.DatabaseError("Failed to get product").WithError(err)
	}

	if err := s.cache.Set(ctx, cacheKey, product, 0); err != nil {
		slog.Warn("product cache write failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFoundError("Product not found")
		}

		return nil, apperrors.DatabaseError("Failed to get product").WithError(err)
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if req.Price != nil || req.Discount != nil {
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.Discount != nil {
			product.Discount = *req.Discount
		}

		product.DeriveDiscountPrice()
	}

	if req.Image != nil {
		// The shared default asset is never deleted.
		if product.Image != "" && product.Image != models.DefaultImage {
			if err := s.store.Delete(ctx, assets.ProductImages, product.Image); err != nil {
				return nil, err
			}
		}

		key, err := s.store.Put(ctx, assets.ProductImages, req.Image.Filename, req.Image.ContentType, req.Image.Data)
		if err != nil {
			return nil, err
		}

		product.Image = key
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, apperrors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFoundError("Product not found")
		}

		return apperrors.DatabaseError("Failed to get product").WithError(err)
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFoundError("Product not found")
		}

		return apperrors.DatabaseError("Failed to delete product").WithError(err)
	}

	if product.Image != "" && product.Image != models.DefaultImage {
		if err := s.store.Delete(ctx, assets.ProductImages, product.Image); err != nil {
			return err
		}
	}

	s.invalidate(ctx, id)

	return nil
}

// ListProducts returns the requested zero-based page in stable id order.
func (s *productService) ListProducts(ctx context.Context, page, size int) (*models.Page[*models.Product], error) {

	page, size = normalizePaging(page, size)

	products, total, err := s.repo.ListProducts(ctx, page, size)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return models.NewPage(products, page, size, total), nil
}

// SearchProducts matches the term against product titles and category names;
// a blank term falls back to the unfiltered listing.
func (s *productService) SearchProducts(ctx context.Context, page, size int, term string) (*models.Page[*models.Product], error) {

	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListProducts(ctx, page, size)
	}

	page, size = normalizePaging(page, size)

	products, total, err := s.repo.SearchProducts(ctx, page, size, term)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to search products").WithError(err)
	}

	return models.NewPage(products, page, size, total), nil
}

func (s *productService) invalidate(ctx context.Context, id int64) {
	cacheKey := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		slog.Warn("product cache invalidation failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}
}

func normalizePaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}

	if size <= 0 {
		size = defaultPageSize
	}

	if size > maxPageSize {
		size = maxPageSize
	}

	return page, size
}
