package blob

import (
	"context"
	"fmt"

	"blob-manager/core/storage"
	"blob-manager/core/storage/factory"
	"blob-manager/core/utils"

	"go.uber.org/zap"
)

// Container is a handle to a named container.
type Container struct {
	Name string `json:"name"`
}

// Blob is a handle to a named blob inside a container.
type Blob struct {
	Container string `json:"container"`
	Name      string `json:"name"`
}

type uploadOptions struct {
	overwrite bool
}

// UploadOption customizes an upload.
type UploadOption func(*uploadOptions)

// WithOverwrite controls whether an existing blob is replaced. Uploads
// overwrite by default; with false an existing blob fails with
// storage.ErrConflict.
func WithOverwrite(overwrite bool) UploadOption {
	return func(o *uploadOptions) {
		o.overwrite = overwrite
	}
}

// Service is the object storage facade.
type Service struct {
	backend storage.Backend
	logger  *zap.Logger
}

// New builds the backend described by cfg and wraps it. It fails with
// storage.ErrMissingCredential when the provider has no credential; it does
// not contact the remote service.
func New(ctx context.Context, cfg storage.Config, logger *zap.Logger) (*Service, error) {
	backend, err := factory.NewBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}
	return NewService(backend, logger), nil
}

// NewService wraps an existing backend.
func NewService(backend storage.Backend, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger}
}

// CreateContainer creates the container, or returns the existing one.
func (s *Service) CreateContainer(ctx context.Context, name string) (*Container, error) {
	err := s.backend.CreateContainer(ctx, name)
	switch {
	case err == nil:
		s.logger.Debug("Container created", zap.String("container", name))
	case storage.IsConflict(err):
		s.logger.Debug("Container already exists", zap.String("container", name))
	default:
		return nil, err
	}
	return &Container{Name: name}, nil
}

// DeleteContainer removes the container and every blob in it.
func (s *Service) DeleteContainer(ctx context.Context, name string) error {
	if err := s.backend.DeleteContainer(ctx, name); err != nil {
		return err
	}
	s.logger.Debug("Container deleted", zap.String("container", name))
	return nil
}

// UploadBlob writes data to container/name.
func (s *Service) UploadBlob(ctx context.Context, container, name string, data []byte, opts ...UploadOption) (*Blob, error) {
	o := uploadOptions{overwrite: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := s.backend.Upload(ctx, container, name, data, o.overwrite); err != nil {
		return nil, err
	}
	s.logger.Debug("Blob uploaded",
		zap.String("container", container),
		zap.String("blob", name),
		zap.Int("size", len(data)),
		zap.Bool("overwrite", o.overwrite),
	)
	return &Blob{Container: container, Name: name}, nil
}

// UploadText writes text, UTF-8 encoded, to container/name.
func (s *Service) UploadText(ctx context.Context, container, name, text string, opts ...UploadOption) (*Blob, error) {
	return s.UploadBlob(ctx, container, name, []byte(text), opts...)
}

// DownloadBlob returns the full content of container/name.
func (s *Service) DownloadBlob(ctx context.Context, container, name string) ([]byte, error) {
	return s.backend.Download(ctx, container, name)
}

// GetBlobAsText downloads container/name and decodes it with the named
// encoding. An empty encoding means UTF-8. Undecodable content or an unknown
// encoding fails with storage.ErrDecoding.
func (s *Service) GetBlobAsText(ctx context.Context, container, name, encoding string) (string, error) {
	data, err := s.backend.Download(ctx, container, name)
	if err != nil {
		return "", err
	}
	text, err := utils.DecodeText(data, encoding)
	if err != nil {
		return "", fmt.Errorf("%s/%s: %w", container, name, err)
	}
	return text, nil
}

// BlobExists reports whether container/name exists. A missing container
// counts as a missing blob; any other failure is returned.
func (s *Service) BlobExists(ctx context.Context, container, name string) (bool, error) {
	_, err := s.backend.Stat(ctx, container, name)
	if err == nil {
		return true, nil
	}
	if storage.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// BlobProperties returns the metadata of container/name.
func (s *Service) BlobProperties(ctx context.Context, container, name string) (*storage.BlobInfo, error) {
	return s.backend.Stat(ctx, container, name)
}

// DeleteBlob removes container/name. A missing blob fails with
// storage.ErrNotFound.
func (s *Service) DeleteBlob(ctx context.Context, container, name string) error {
	if err := s.backend.DeleteBlob(ctx, container, name); err != nil {
		return err
	}
	s.logger.Debug("Blob deleted", zap.String("container", container), zap.String("blob", name))
	return nil
}

// ListBlobs returns the blob names of container in backend order.
func (s *Service) ListBlobs(ctx context.Context, container string) ([]string, error) {
	return s.backend.ListBlobs(ctx, container)
}
