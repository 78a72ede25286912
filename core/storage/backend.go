package storage

import (
	"context"
	"time"
)

// Backend is the capability every storage provider implements.
//
// Implementations translate their native "not found" and "already exists"
// signals into ErrNotFound and ErrConflict (usually through *Error). Any
// other failure is returned unchanged.
type Backend interface {
	// CreateContainer creates a container. Returns ErrConflict if it already exists.
	CreateContainer(ctx context.Context, name string) error
	// DeleteContainer removes a container and every blob in it.
	DeleteContainer(ctx context.Context, name string) error
	// Upload writes data to container/blob. With overwrite false an existing
	// blob yields ErrConflict.
	Upload(ctx context.Context, container, blob string, data []byte, overwrite bool) error
	// Download returns the full content of container/blob.
	Download(ctx context.Context, container, blob string) ([]byte, error)
	// Stat returns blob metadata without downloading content.
	Stat(ctx context.Context, container, blob string) (*BlobInfo, error)
	// DeleteBlob removes container/blob. Returns ErrNotFound if it is absent.
	DeleteBlob(ctx context.Context, container, blob string) error
	// ListBlobs returns blob names in the order the backend lists them.
	ListBlobs(ctx context.Context, container string) ([]string, error)
}

// BlobInfo describes a stored blob.
type BlobInfo struct {
	// Name is the blob name within its container.
	Name string `json:"name"`
	// Size is the content length in bytes.
	Size int64 `json:"size"`
	// ContentType is the MIME type reported by the backend, if any.
	ContentType string `json:"content_type,omitempty"`
	// ETag is the entity tag as returned by the backend.
	ETag string `json:"etag,omitempty"`
	// LastModified is when the blob was last written.
	LastModified time.Time `json:"last_modified"`
}
