// Package factory builds a storage.Backend for the configured provider.
package factory

import (
	"context"
	"fmt"

	"blob-manager/core/storage"
	"blob-manager/core/storage/azure"
	"blob-manager/core/storage/memory"
	"blob-manager/core/storage/minio"
	"blob-manager/core/storage/s3"
)

// NewBackend creates the backend named by cfg.Provider. A provider whose
// credential is not configured fails with storage.ErrMissingCredential.
func NewBackend(ctx context.Context, cfg storage.Config) (storage.Backend, error) {
	var (
		backend storage.Backend
		err     error
	)

	switch cfg.Provider {
	case storage.ProviderAzure, "":
		backend, err = unwrap(azure.New(cfg))
	case storage.ProviderMinio:
		backend, err = unwrap(minio.New(cfg))
	case storage.ProviderS3:
		backend, err = unwrap(s3.New(ctx, cfg))
	case storage.ProviderMemory:
		backend = memory.New()
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}
	return backend, nil
}

// unwrap keeps a nil concrete pointer from turning into a non-nil interface.
func unwrap[T storage.Backend](b T, err error) (storage.Backend, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}
