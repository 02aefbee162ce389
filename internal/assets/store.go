package assets

import "context"

// Namespace separates assets by owning entity kind. The values double as
// on-disk subdirectory names in filesystem mode.
type Namespace string

const (
	CategoryImages Namespace = "category_img"
	ProductImages  Namespace = "product_img"
)

func (n Namespace) Valid() bool {
	return n == CategoryImages || n == ProductImages
}

// Store persists binary image assets under opaque keys. Two implementations
// exist: FileStore (files under a configured directory) and BlobStore (rows
// in the database). One is selected at process start; modes are never mixed.
//
// Put generates a key unique within the namespace. Delete of a missing asset
// is a no-op. Any I/O failure surfaces as a STORAGE_ERROR AppError; callers
// decide whether it aborts the enclosing entity write.
type Store interface {
	Put(ctx context.Context, ns Namespace, originalName, contentType string, data []byte) (string, error)
	Get(ctx context.Context, ns Namespace, key string) ([]byte, string, error)
	Delete(ctx context.Context, ns Namespace, key string) error
}
