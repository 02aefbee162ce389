package assets

import (
	"context"

	"github.com/catalogkit/catalog-admin-service/internal/metrics"
)

type instrumentedStore struct {
	next Store
}

// NewInstrumentedStore wraps a Store with Prometheus counters per operation.
func NewInstrumentedStore(next Store) Store {
	return &instrumentedStore{next: next}
}

func result(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}

func (s *instrumentedStore) Put(ctx context.Context, ns Namespace, originalName, contentType string, data []byte) (string, error) {
	key, err := s.next.Put(ctx, ns, originalName, contentType, data)
	metrics.AssetOperations.WithLabelValues("put", result(err)).Inc()

	return key, err
}

func (s *instrumentedStore) Get(ctx context.Context, ns Namespace, key string) ([]byte, string, error) {
	data, contentType, err := s.next.Get(ctx, ns, key)
	metrics.AssetOperations.WithLabelValues("get", result(err)).Inc()

	return data, contentType, err
}

func (s *instrumentedStore) Delete(ctx context.Context, ns Namespace, key string) error {
	err := s.next.Delete(ctx, ns, key)
	metrics.AssetOperations.WithLabelValues("delete", result(err)).Inc()

	return err
}
