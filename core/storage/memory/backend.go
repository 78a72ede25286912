// Package memory provides a process-local implementation of storage.Backend.
//
// It keeps every container in a map guarded by a RWMutex. Content is copied
// on the way in and out so callers cannot mutate stored blobs.
package memory

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"sync"
	"time"

	"blob-manager/core/storage"
)

type object struct {
	data        []byte
	contentType string
	etag        string
	modified    time.Time
}

// Backend is an in-memory storage.Backend. It is safe for concurrent use.
type Backend struct {
	mutex      sync.RWMutex
	containers map[string]map[string]*object
}

// New returns an empty Backend.
func New() *Backend {
	return &Backend{containers: make(map[string]map[string]*object)}
}

// CreateContainer creates an empty container.
func (b *Backend) CreateContainer(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if _, ok := b.containers[name]; ok {
		return storage.Conflict("create container", name, "", nil)
	}
	b.containers[name] = make(map[string]*object)
	return nil
}

// DeleteContainer drops a container and its blobs.
func (b *Backend) DeleteContainer(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if _, ok := b.containers[name]; !ok {
		return storage.NotFound("delete container", name, "", nil)
	}
	delete(b.containers, name)
	return nil
}

// Upload stores a copy of data.
func (b *Backend) Upload(ctx context.Context, container, blob string, data []byte, overwrite bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()

	blobs, ok := b.containers[container]
	if !ok {
		return storage.NotFound("upload", container, blob, nil)
	}
	if _, exists := blobs[blob]; exists && !overwrite {
		return storage.Conflict("upload", container, blob, nil)
	}

	sum := md5.Sum(data)
	blobs[blob] = &object{
		data:        append([]byte(nil), data...),
		contentType: http.DetectContentType(data),
		etag:        `"` + hex.EncodeToString(sum[:]) + `"`,
		modified:    time.Now().UTC(),
	}
	return nil
}

// Download returns a copy of the stored content.
func (b *Backend) Download(ctx context.Context, container, blob string) ([]byte, error) {
	obj, err := b.lookup(ctx, "download", container, blob)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, obj.data...), nil
}

// Stat returns blob metadata.
func (b *Backend) Stat(ctx context.Context, container, blob string) (*storage.BlobInfo, error) {
	obj, err := b.lookup(ctx, "stat", container, blob)
	if err != nil {
		return nil, err
	}
	return &storage.BlobInfo{
		Name:         blob,
		Size:         int64(len(obj.data)),
		ContentType:  obj.contentType,
		ETag:         obj.etag,
		LastModified: obj.modified,
	}, nil
}

// DeleteBlob removes a blob.
func (b *Backend) DeleteBlob(ctx context.Context, container, blob string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()

	blobs, ok := b.containers[container]
	if !ok {
		return storage.NotFound("delete blob", container, blob, nil)
	}
	if _, ok := blobs[blob]; !ok {
		return storage.NotFound("delete blob", container, blob, nil)
	}
	delete(blobs, blob)
	return nil
}

// ListBlobs returns blob names in lexicographic order, like the remote services do.
func (b *Backend) ListBlobs(ctx context.Context, container string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	blobs, ok := b.containers[container]
	if !ok {
		return nil, storage.NotFound("list blobs", container, "", nil)
	}
	names := make([]string, 0, len(blobs))
	for name := range blobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (b *Backend) lookup(ctx context.Context, op, container, blob string) (*object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	blobs, ok := b.containers[container]
	if !ok {
		return nil, storage.NotFound(op, container, blob, nil)
	}
	obj, ok := blobs[blob]
	if !ok {
		return nil, storage.NotFound(op, container, blob, nil)
	}
	return obj, nil
}

var _ storage.Backend = (*Backend)(nil)
