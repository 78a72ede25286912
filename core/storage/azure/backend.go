// Package azure implements storage.Backend on Azure Blob Storage.
//
// The backend is built from an account connection string; parsing it is
// left to the SDK.
package azure

import (
	"context"
	"fmt"
	"io"

	"blob-manager/core/storage"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// Backend is an Azure Blob implementation of storage.Backend.
// The SDK client is safe for concurrent use.
type Backend struct {
	client *azblob.Client
}

// New creates a Backend from a connection string. The SDK does not contact
// the account until the first request.
func New(cfg storage.Config) (*Backend, error) {
	if cfg.ConnectionString == "" {
		return nil, fmt.Errorf("azure connection string is required: %w", storage.ErrMissingCredential)
	}

	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}
	return &Backend{client: client}, nil
}

// CreateContainer creates a container.
func (b *Backend) CreateContainer(ctx context.Context, name string) error {
	_, err := b.client.CreateContainer(ctx, name, nil)
	return translate(err, "create container", name, "")
}

// DeleteContainer marks the container and its blobs for deletion.
func (b *Backend) DeleteContainer(ctx context.Context, name string) error {
	_, err := b.client.DeleteContainer(ctx, name, nil)
	return translate(err, "delete container", name, "")
}

// Upload writes a block blob. With overwrite disabled the upload carries
// If-None-Match: * so the service rejects it when the blob exists.
func (b *Backend) Upload(ctx context.Context, container, blobName string, data []byte, overwrite bool) error {
	var opts *azblob.UploadBufferOptions
	if !overwrite {
		etagAny := azcore.ETagAny
		opts = &azblob.UploadBufferOptions{
			AccessConditions: &blob.AccessConditions{
				ModifiedAccessConditions: &blob.ModifiedAccessConditions{IfNoneMatch: &etagAny},
			},
		}
	}
	_, err := b.client.UploadBuffer(ctx, container, blobName, data, opts)
	return translate(err, "upload", container, blobName)
}

// Download reads the whole blob.
func (b *Backend) Download(ctx context.Context, container, blobName string) ([]byte, error) {
	resp, err := b.client.DownloadStream(ctx, container, blobName, nil)
	if err != nil {
		return nil, translate(err, "download", container, blobName)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// Stat fetches blob properties.
func (b *Backend) Stat(ctx context.Context, container, blobName string) (*storage.BlobInfo, error) {
	props, err := b.client.ServiceClient().
		NewContainerClient(container).
		NewBlobClient(blobName).
		GetProperties(ctx, nil)
	if err != nil {
		return nil, translate(err, "stat", container, blobName)
	}

	info := &storage.BlobInfo{Name: blobName}
	if props.ContentLength != nil {
		info.Size = *props.ContentLength
	}
	if props.ContentType != nil {
		info.ContentType = *props.ContentType
	}
	if props.ETag != nil {
		info.ETag = string(*props.ETag)
	}
	if props.LastModified != nil {
		info.LastModified = *props.LastModified
	}
	return info, nil
}

// DeleteBlob deletes a blob. The service reports BlobNotFound for missing blobs.
func (b *Backend) DeleteBlob(ctx context.Context, container, blobName string) error {
	_, err := b.client.DeleteBlob(ctx, container, blobName, nil)
	return translate(err, "delete blob", container, blobName)
}

// ListBlobs pages through a flat listing of the container.
func (b *Backend) ListBlobs(ctx context.Context, container string) ([]string, error) {
	names := []string{}
	pager := b.client.NewListBlobsFlatPager(container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, translate(err, "list blobs", container, "")
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

var _ storage.Backend = (*Backend)(nil)
