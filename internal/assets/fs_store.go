package assets

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/catalogkit/catalog-admin-service/internal/errors"
	"github.com/google/uuid"
)

// FileStore writes assets as files under root/<namespace>/. Keys are
// "<uuid>_<sanitized original name>"; the uuid token makes keys collision
// free regardless of clock resolution or concurrent uploads.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Put(ctx context.Context, ns Namespace, originalName, contentType string, data []byte) (string, error) {
	dir := filepath.Join(s.root, string(ns))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.StorageError("Failed to create upload directory").WithError(err)
	}

	key := uuid.NewString() + "_" + SanitizeFilename(originalName)

	if err := os.WriteFile(filepath.Join(dir, key), data, 0o644); err != nil {
		return "", errors.StorageError("Failed to write image file").WithError(err)
	}

	return key, nil
}

func (s *FileStore) Get(ctx context.Context, ns Namespace, key string) ([]byte, string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, string(ns), SanitizeFilename(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.NotFoundError("Image not found")
		}

		return nil, "", errors.StorageError("Failed to read image file").WithError(err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return data, contentType, nil
}

func (s *FileStore) Delete(ctx context.Context, ns Namespace, key string) error {
	err := os.Remove(filepath.Join(s.root, string(ns), SanitizeFilename(key)))
	if err != nil && !os.IsNotExist(err) {
		return errors.StorageError("Failed to delete image file").WithError(err)
	}

	return nil
}

// SanitizeFilename strips directory components from a client-supplied name.
// Separators are normalized first so a backslash path from a Windows client
// cannot smuggle traversal segments through filepath.Base on Linux.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "upload"
	}

	return name
}
