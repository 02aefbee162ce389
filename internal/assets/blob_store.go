package assets

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/catalogkit/catalog-admin-service/internal/errors"
	"github.com/catalogkit/catalog-admin-service/internal/utils"
	"github.com/google/uuid"
)

// BlobStore keeps asset bytes and their declared content type in the
// catalog_assets table; the key is the row id. No filesystem interaction.
// Deleting a missing row is a no-op, matching FileStore semantics.
type BlobStore struct {
	DB *sql.DB
}

func NewBlobStore(db *sql.DB) *BlobStore {
	return &BlobStore{DB: db}
}

func (s *BlobStore) Put(ctx context.Context, ns Namespace, originalName, contentType string, data []byte) (string, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	id := uuid.New()

	query := `INSERT INTO catalog_assets (id, namespace, file_name, content_type, data)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := s.DB.ExecContext(dbCtx, query, id, string(ns), SanitizeFilename(originalName), contentType, data)
	if err != nil {
		return "", errors.StorageError("Failed to store image blob").WithError(err)
	}

	return id.String(), nil
}

func (s *BlobStore) Get(ctx context.Context, ns Namespace, key string) ([]byte, string, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	id, err := uuid.Parse(key)
	if err != nil {
		return nil, "", errors.NotFoundError("Image not found")
	}

	var data []byte
	var contentType string

	query := `SELECT data, content_type FROM catalog_assets WHERE id = $1 AND namespace = $2`

	err = s.DB.QueryRowContext(dbCtx, query, id, string(ns)).Scan(&data, &contentType)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, "", errors.NotFoundError("Image not found")
		}

		return nil, "", errors.StorageError("Failed to read image blob").WithError(err)
	}

	return data, contentType, nil
}

func (s *BlobStore) Delete(ctx context.Context, ns Namespace, key string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	id, err := uuid.Parse(key)
	if err != nil {
		return nil
	}

	query := `DELETE FROM catalog_assets WHERE id = $1 AND namespace = $2`

	_, err = s.DB.ExecContext(dbCtx, query, id, string(ns))
	if err != nil {
		return errors.StorageError("Failed to delete image blob").WithError(err)
	}

	return nil
}
