// Package s3 implements storage.Backend on AWS S3 with aws-sdk-go-v2.
package s3

import (
	"bytes"
	"context"
	"io"

	"blob-manager/core/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// deleteBatchSize is the DeleteObjects per-request key limit.
const deleteBatchSize = 1000

// Backend is an S3 implementation of storage.Backend.
type Backend struct {
	api    API
	region string
}

// New creates a Backend from configuration.
func New(ctx context.Context, cfg storage.Config) (*Backend, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithAPI(client, cfg.Region), nil
}

// NewWithAPI wraps an existing S3 client.
func NewWithAPI(api API, region string) *Backend {
	return &Backend{api: api, region: region}
}

// CreateContainer creates a bucket. Outside us-east-1 S3 requires an
// explicit location constraint.
func (b *Backend) CreateContainer(ctx context.Context, name string) error {
	input := &awss3.CreateBucketInput{Bucket: aws.String(name)}
	if b.region != "" && b.region != defaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(b.region),
		}
	}
	_, err := b.api.CreateBucket(ctx, input)
	return translate(err, "create container", name, "")
}

// DeleteContainer deletes every object in batches, then the bucket.
func (b *Backend) DeleteContainer(ctx context.Context, name string) error {
	keys, err := b.listKeys(ctx, name)
	if err != nil {
		return translate(err, "delete container", name, "")
	}

	for start := 0; start < len(keys); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(keys))
		ids := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(key)})
		}
		_, err := b.api.DeleteObjects(ctx, &awss3.DeleteObjectsInput{
			Bucket: aws.String(name),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return translate(err, "delete container", name, "")
		}
	}

	_, err = b.api.DeleteBucket(ctx, &awss3.DeleteBucketInput{Bucket: aws.String(name)})
	return translate(err, "delete container", name, "")
}

// Upload puts an object. With overwrite disabled the write is conditional
// on the key not existing (If-None-Match: *).
func (b *Backend) Upload(ctx context.Context, container, blob string, data []byte, overwrite bool) error {
	input := &awss3.PutObjectInput{
		Bucket:        aws.String(container),
		Key:           aws.String(blob),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if !overwrite {
		input.IfNoneMatch = aws.String("*")
	}
	_, err := b.api.PutObject(ctx, input)
	return translate(err, "upload", container, blob)
}

// Download reads the whole object.
func (b *Backend) Download(ctx context.Context, container, blob string) ([]byte, error) {
	out, err := b.api.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(blob),
	})
	if err != nil {
		return nil, translate(err, "download", container, blob)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// Stat returns object metadata from a HEAD request.
func (b *Backend) Stat(ctx context.Context, container, blob string) (*storage.BlobInfo, error) {
	out, err := b.api.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(blob),
	})
	if err != nil {
		return nil, translate(err, "stat", container, blob)
	}
	return &storage.BlobInfo{
		Name:         blob,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		ETag:         aws.ToString(out.ETag),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// DeleteBlob removes an object. S3 deletes are idempotent, so the object is
// checked with a HEAD first to report missing blobs.
func (b *Backend) DeleteBlob(ctx context.Context, container, blob string) error {
	_, err := b.api.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(blob),
	})
	if err != nil {
		return translate(err, "delete blob", container, blob)
	}
	_, err = b.api.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(container),
		Key:    aws.String(blob),
	})
	return translate(err, "delete blob", container, blob)
}

// ListBlobs pages through every key in the bucket.
func (b *Backend) ListBlobs(ctx context.Context, container string) ([]string, error) {
	keys, err := b.listKeys(ctx, container)
	if err != nil {
		return nil, translate(err, "list blobs", container, "")
	}
	return keys, nil
}

func (b *Backend) listKeys(ctx context.Context, bucket string) ([]string, error) {
	keys := []string{}
	paginator := awss3.NewListObjectsV2Paginator(b.api, &awss3.ListObjectsV2Input{Bucket: aws.String(bucket)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

var _ storage.Backend = (*Backend)(nil)
