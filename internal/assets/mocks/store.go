package mocks

import (
	"context"

	"github.com/catalogkit/catalog-admin-service/internal/assets"
	"github.com/stretchr/testify/mock"
)

type Store struct {
	mock.Mock
}

func (m *Store) Put(ctx context.Context, ns assets.Namespace, originalName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, ns, originalName, contentType, data)

	return args.String(0), args.Error(1)
}

func (m *Store) Get(ctx context.Context, ns assets.Namespace, key string) ([]byte, string, error) {
	args := m.Called(ctx, ns, key)

	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}

	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *Store) Delete(ctx context.Context, ns assets.Namespace, key string) error {
	args := m.Called(ctx, ns, key)

	return args.Error(0)
}
