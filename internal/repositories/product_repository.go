package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/catalogkit/catalog-admin-service/internal/models"
	"github.com/catalogkit/catalog-admin-service/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, page, size int) ([]*models.Product, int64, error)
	SearchProducts(ctx context.Context, page, size int, term string) ([]*models.Product, int64, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `p.id, p.category_id, p.title, p.description, p.price,
	       p.discount, p.discount_price, p.stock, p.image, p.is_active,
	       p.created_at, p.updated_at,
	       c.id, c.name, c.is_active`

func scanProduct(scanner interface{ Scan(dest ...any) error }) (*models.Product, error) {
	product := &models.Product{}
	category := &models.Category{}

	err := scanner.Scan(&product.ID, &product.CategoryID, &product.Title, &product.Description, &product.Price,
		&product.Discount, &product.DiscountPrice, &product.Stock, &product.Image, &product.IsActive,
		&product.CreatedAt, &product.UpdatedAt,
		&category.ID, &category.Name, &category.IsActive)
	if err != nil {
		return nil, err
	}

	product.Category = category

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (category_id, title, description, price, discount, discount_price, stock, image, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Title, product.Description, product.Price, product.Discount, product.DiscountPrice, product.Stock, product.Image, product.IsActive).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
        SELECT ` + productColumns + `
        FROM products p
        JOIN categories c ON p.category_id = c.id
        WHERE p.id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET category_id = $1, title = $2, description = $3, price = $4, discount = $5, discount_price = $6, stock = $7, image = $8, is_active = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, product.CategoryID, product.Title, product.Description, product.Price, product.Discount, product.DiscountPrice, product.Stock, product.Image, product.IsActive, product.ID).Scan(&product.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	return err
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListProducts returns the requested zero-based page ordered by id plus the
// total row count, so callers can derive page metadata.
func (r *productRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int64, error) {
	return r.pagedQuery(ctx, page, size, "")
}

// SearchProducts matches the term case-insensitively against the product
// title or the linked category name.
func (r *productRepository) SearchProducts(ctx context.Context, page, size int, term string) ([]*models.Product, int64, error) {
	return r.pagedQuery(ctx, page, size, term)
}

func (r *productRepository) pagedQuery(ctx context.Context, page, size int, term string) ([]*models.Product, int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	filter := ``
	args := []any{}

	if term != "" {
		filter = ` WHERE p.title ILIKE '%' || $1 || '%' OR c.name ILIKE '%' || $1 || '%'`
		args = append(args, term)
	}

	countQuery := `SELECT COUNT(*) FROM products p JOIN categories c ON p.category_id = c.id` + filter

	var total int64

	err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := page * size

	query := fmt.Sprintf(`
		SELECT `+productColumns+`
		FROM products p
		JOIN categories c ON p.category_id = c.id`+filter+`
		ORDER BY p.id
		LIMIT $%d OFFSET $%d
	`, len(args)+1, len(args)+2)

	args = append(args, size, offset)

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
