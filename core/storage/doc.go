// Package storage defines the capability layer between the blob facade and
// the object storage services it talks to.
//
// # Backend Interface
//
// Backend is a one-to-one capability over a remote account: containers and
// the blobs inside them. Providers live in sub-packages:
//
//   - azure: Azure Blob Storage, addressed by a connection string.
//   - minio: MinIO and other S3-compatible services (minio-go).
//   - s3: AWS S3 (aws-sdk-go-v2).
//   - memory: process-local map, for tests and local runs.
//
// The factory sub-package builds the right one from a Config, and the mocks
// sub-package holds testify mocks for unit tests.
//
// # Errors
//
// Providers report a missing resource as ErrNotFound and an existing one as
// ErrConflict, wrapped in *Error so the native cause is preserved:
//
//	if _, err := backend.Download(ctx, "assets", "logo.png"); storage.IsNotFound(err) {
//	    // ...
//	}
package storage
