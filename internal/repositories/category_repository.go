package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/catalogkit/catalog-admin-service/internal/models"
	"github.com/catalogkit/catalog-admin-service/internal/utils"
)

// ErrNotFound is returned when the requested row does not exist. Services
// translate it into their NOT_FOUND error kind.
var ErrNotFound = errors.New("record not found")

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO categories (name, is_active, image_key)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, category.IsActive, category.ImageKey).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	query := `SELECT id, name, is_active, image_key, created_at, updated_at
			  FROM categories
			  WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&category.ID, &category.Name, &category.IsActive, &category.ImageKey, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE categories SET name = $1, is_active = $2, image_key = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, category.Name, category.IsActive, category.ImageKey, category.ID).Scan(&category.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	return err
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM categories WHERE id = $1`, id)
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

func (r *categoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, is_active, image_key, created_at, updated_at
			  FROM categories
			  ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var categories []*models.Category

	for rows.Next() {
		category := &models.Category{}

		err := rows.Scan(&category.ID, &category.Name, &category.IsActive, &category.ImageKey, &category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// ExistsByName reports whether another category already uses the name,
// case-insensitively. excludeID skips the category itself on update; pass 0
// on create.
func (r *categoryRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2)`

	err := r.DB.QueryRowContext(dbCtx, query, name, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
