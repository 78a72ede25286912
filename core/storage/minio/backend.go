// Package minio implements storage.Backend on top of the MinIO Go client,
// for MinIO servers and any other S3-compatible service.
//
// Buckets play the role of containers and objects the role of blobs.
package minio

import (
	"bytes"
	"context"
	"io"

	"blob-manager/core/storage"

	miniogo "github.com/minio/minio-go/v7"
)

// Backend is a MinIO implementation of storage.Backend.
// It is safe for concurrent use by multiple goroutines.
type Backend struct {
	client Client
	region string
}

// New creates a Backend from configuration. It does not contact the server.
func New(cfg storage.Config) (*Backend, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithClient(client, cfg.Region), nil
}

// NewWithClient wraps an existing Client.
func NewWithClient(client Client, region string) *Backend {
	return &Backend{client: client, region: region}
}

// CreateContainer creates a bucket.
func (b *Backend) CreateContainer(ctx context.Context, name string) error {
	err := b.client.MakeBucket(ctx, name, miniogo.MakeBucketOptions{Region: b.region})
	return translate(err, "create container", name, "")
}

// DeleteContainer empties the bucket, then removes it. S3 refuses to delete
// non-empty buckets.
func (b *Backend) DeleteContainer(ctx context.Context, name string) error {
	var objects []miniogo.ObjectInfo
	for obj := range b.client.ListObjects(ctx, name, miniogo.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return translate(obj.Err, "delete container", name, "")
		}
		objects = append(objects, obj)
	}

	if len(objects) > 0 {
		objectsCh := make(chan miniogo.ObjectInfo, len(objects))
		for _, obj := range objects {
			objectsCh <- obj
		}
		close(objectsCh)

		var removeErr error
		for rErr := range b.client.RemoveObjects(ctx, name, objectsCh, miniogo.RemoveObjectsOptions{}) {
			if removeErr == nil && rErr.Err != nil {
				removeErr = rErr.Err
			}
		}
		if removeErr != nil {
			return translate(removeErr, "delete container", name, "")
		}
	}

	return translate(b.client.RemoveBucket(ctx, name), "delete container", name, "")
}

// Upload puts an object. With overwrite disabled the object is stat'ed
// first; the check and the write are two requests, so a concurrent writer
// can still slip in between them.
func (b *Backend) Upload(ctx context.Context, container, blob string, data []byte, overwrite bool) error {
	if !overwrite {
		_, err := b.client.StatObject(ctx, container, blob, miniogo.StatObjectOptions{})
		if err == nil {
			return storage.Conflict("upload", container, blob, nil)
		}
		if err = translate(err, "upload", container, blob); !storage.IsNotFound(err) {
			return err
		}
	}

	_, err := b.client.PutObject(ctx, container, blob, bytes.NewReader(data), int64(len(data)), miniogo.PutObjectOptions{})
	return translate(err, "upload", container, blob)
}

// Download reads the whole object. The SDK surfaces missing objects on the
// first read, not on GetObject.
func (b *Backend) Download(ctx context.Context, container, blob string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, container, blob, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, translate(err, "download", container, blob)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translate(err, "download", container, blob)
	}
	return data, nil
}

// Stat returns object metadata.
func (b *Backend) Stat(ctx context.Context, container, blob string) (*storage.BlobInfo, error) {
	info, err := b.client.StatObject(ctx, container, blob, miniogo.StatObjectOptions{})
	if err != nil {
		return nil, translate(err, "stat", container, blob)
	}
	return &storage.BlobInfo{
		Name:         blob,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// DeleteBlob removes an object. S3 deletes are idempotent, so existence is
// checked first to report missing blobs.
func (b *Backend) DeleteBlob(ctx context.Context, container, blob string) error {
	if _, err := b.client.StatObject(ctx, container, blob, miniogo.StatObjectOptions{}); err != nil {
		return translate(err, "delete blob", container, blob)
	}
	err := b.client.RemoveObject(ctx, container, blob, miniogo.RemoveObjectOptions{})
	return translate(err, "delete blob", container, blob)
}

// ListBlobs lists every object key in the bucket.
func (b *Backend) ListBlobs(ctx context.Context, container string) ([]string, error) {
	names := []string{}
	for obj := range b.client.ListObjects(ctx, container, miniogo.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, translate(obj.Err, "list blobs", container, "")
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

var _ storage.Backend = (*Backend)(nil)
