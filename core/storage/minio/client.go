package minio

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"blob-manager/core/storage"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultEndpoint = "localhost:9000"

// Client is the subset of the MinIO SDK the backend uses.
type Client interface {
	// MakeBucket creates a new bucket.
	MakeBucket(ctx context.Context, bucketName string, opts miniogo.MakeBucketOptions) error
	// RemoveBucket deletes an empty bucket.
	RemoveBucket(ctx context.Context, bucketName string) error
	// PutObject uploads an object.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts miniogo.PutObjectOptions) (miniogo.UploadInfo, error)
	// GetObject downloads an object.
	GetObject(ctx context.Context, bucketName, objectName string, opts miniogo.GetObjectOptions) (io.ReadCloser, error)
	// StatObject fetches object metadata.
	StatObject(ctx context.Context, bucketName, objectName string, opts miniogo.StatObjectOptions) (miniogo.ObjectInfo, error)
	// ListObjects lists objects in a bucket.
	ListObjects(ctx context.Context, bucketName string, opts miniogo.ListObjectsOptions) <-chan miniogo.ObjectInfo
	// RemoveObject deletes an object from a bucket.
	RemoveObject(ctx context.Context, bucketName, objectName string, opts miniogo.RemoveObjectOptions) error
	// RemoveObjects deletes multiple objects from a bucket efficiently.
	// objectsCh is a channel of object names to delete.
	RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan miniogo.ObjectInfo, opts miniogo.RemoveObjectsOptions) <-chan miniogo.RemoveObjectError
}

// NewClient creates a new Minio client based on the configuration.
func NewClient(cfg storage.Config) (Client, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio access key and secret key are required: %w", storage.ErrMissingCredential)
	}

	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	minioClient, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// Minio connects lazily; the transport timeouts bound connection setup.

	return &minioClientWrapper{Client: minioClient}, nil
}

type minioClientWrapper struct {
	*miniogo.Client
}

func (c *minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts miniogo.GetObjectOptions) (io.ReadCloser, error) {
	return c.Client.GetObject(ctx, bucketName, objectName, opts)
}
