// Package mocks holds testify mocks for the storage layer.
package mocks

import (
	"context"

	"blob-manager/core/storage"

	"github.com/stretchr/testify/mock"
)

// Backend is a mock implementation of storage.Backend.
type Backend struct {
	mock.Mock
}

func (m *Backend) CreateContainer(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *Backend) DeleteContainer(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *Backend) Upload(ctx context.Context, container, blob string, data []byte, overwrite bool) error {
	args := m.Called(ctx, container, blob, data, overwrite)
	return args.Error(0)
}

func (m *Backend) Download(ctx context.Context, container, blob string) ([]byte, error) {
	args := m.Called(ctx, container, blob)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) Stat(ctx context.Context, container, blob string) (*storage.BlobInfo, error) {
	args := m.Called(ctx, container, blob)
	if info, ok := args.Get(0).(*storage.BlobInfo); ok {
		return info, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) DeleteBlob(ctx context.Context, container, blob string) error {
	args := m.Called(ctx, container, blob)
	return args.Error(0)
}

func (m *Backend) ListBlobs(ctx context.Context, container string) ([]string, error) {
	args := m.Called(ctx, container)
	if names, ok := args.Get(0).([]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ storage.Backend = (*Backend)(nil)
