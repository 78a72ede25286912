package blob_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"blob-manager/core/storage"
	"blob-manager/core/storage/memory"
	"blob-manager/core/storage/mocks"
	"blob-manager/feature/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMemoryService(t *testing.T) *blob.Service {
	t.Helper()
	return blob.NewService(memory.New(), zap.NewNop())
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	svc, err := blob.New(ctx, storage.Config{Provider: storage.ProviderMemory}, nil)
	require.NoError(t, err)
	require.NotNil(t, svc)

	_, err = blob.New(ctx, storage.Config{Provider: storage.ProviderAzure}, zap.NewNop())
	assert.ErrorIs(t, err, storage.ErrMissingCredential)

	_, err = blob.New(ctx, storage.Config{Provider: "ftp"}, zap.NewNop())
	assert.Error(t, err)
}

func TestService_ExampleScenario(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	container, err := svc.CreateContainer(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", container.Name)

	b, err := svc.UploadText(ctx, "t1", "f.txt", "hello")
	require.NoError(t, err)
	assert.Equal(t, &blob.Blob{Container: "t1", Name: "f.txt"}, b)

	text, err := svc.GetBlobAsText(ctx, "t1", "f.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	require.NoError(t, svc.DeleteBlob(ctx, "t1", "f.txt"))

	exists, err := svc.BlobExists(ctx, "t1", "f.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, svc.DeleteContainer(ctx, "t1"))
}

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	_, err := svc.CreateContainer(ctx, "round")
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"Text", []byte("plain text")},
		{"Unicode", []byte("héllo wörld ✓")},
		{"NulBytes", []byte{0x00, 0x01, 0x00, 0xff}},
		{"Empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadBlob(ctx, "round", tt.name, tt.data)
			require.NoError(t, err)

			got, err := svc.DownloadBlob(ctx, "round", tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
		})
	}
}

func TestService_UploadTextEncodesUTF8(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	_, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)

	_, err = svc.UploadText(ctx, "c", "t", "é")
	require.NoError(t, err)

	data, err := svc.DownloadBlob(ctx, "c", "t")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc3, 0xa9}, data)
}

func TestService_ExistsLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	_, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)

	exists, err := svc.BlobExists(ctx, "c", "n")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.UploadText(ctx, "c", "n", "x")
	require.NoError(t, err)

	exists, err = svc.BlobExists(ctx, "c", "n")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, svc.DeleteBlob(ctx, "c", "n"))

	exists, err = svc.BlobExists(ctx, "c", "n")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestService_ExistsMissingContainer(t *testing.T) {
	exists, err := newMemoryService(t).BlobExists(context.Background(), "nope", "n")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestService_Overwrite(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	_, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)

	_, err = svc.UploadText(ctx, "c", "n", "first")
	require.NoError(t, err)
	_, err = svc.UploadText(ctx, "c", "n", "second", blob.WithOverwrite(true))
	require.NoError(t, err)

	text, err := svc.GetBlobAsText(ctx, "c", "n", "")
	require.NoError(t, err)
	assert.Equal(t, "second", text)

	_, err = svc.UploadText(ctx, "c", "n", "third", blob.WithOverwrite(false))
	assert.ErrorIs(t, err, storage.ErrConflict)

	text, err = svc.GetBlobAsText(ctx, "c", "n", "")
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestService_CreateContainerIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)

	first, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)
	second, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = svc.UploadText(ctx, "c", "n", "x")
	require.NoError(t, err)
	_, err = svc.CreateContainer(ctx, "c")
	require.NoError(t, err)

	names, err := svc.ListBlobs(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"n"}, names)
}

func TestService_ListBlobs(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	_, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)

	for _, name := range []string{"c", "a", "b"} {
		_, err := svc.UploadText(ctx, "c", name, name)
		require.NoError(t, err)
	}

	names, err := svc.ListBlobs(ctx, "c")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names)

	_, err = svc.ListBlobs(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	_, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)

	_, err = svc.DownloadBlob(ctx, "c", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = svc.GetBlobAsText(ctx, "c", "missing", "")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = svc.BlobProperties(ctx, "c", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteBlob(ctx, "c", "missing"), storage.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteContainer(ctx, "missing"), storage.ErrNotFound)

	_, err = svc.DownloadBlob(ctx, "missing", "f")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_DeleteContainerRemovesBlobs(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	_, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)
	_, err = svc.UploadText(ctx, "c", "n", "x")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteContainer(ctx, "c"))

	_, err = svc.CreateContainer(ctx, "c")
	require.NoError(t, err)
	names, err := svc.ListBlobs(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestService_GetBlobAsTextEncodings(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	_, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)

	_, err = svc.UploadBlob(ctx, "c", "latin", []byte{0x63, 0x61, 0x66, 0xe9})
	require.NoError(t, err)

	text, err := svc.GetBlobAsText(ctx, "c", "latin", "iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "café", text)

	_, err = svc.GetBlobAsText(ctx, "c", "latin", "utf-8")
	assert.ErrorIs(t, err, storage.ErrDecoding)

	_, err = svc.GetBlobAsText(ctx, "c", "latin", "no-such-charset")
	assert.ErrorIs(t, err, storage.ErrDecoding)
}

func TestService_BlobProperties(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	_, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)
	_, err = svc.UploadText(ctx, "c", "f.txt", "hello")
	require.NoError(t, err)

	info, err := svc.BlobProperties(ctx, "c", "f.txt")
	require.NoError(t, err)
	assert.Equal(t, "f.txt", info.Name)
	assert.Equal(t, int64(5), info.Size)
	assert.NotEmpty(t, info.ETag)
	assert.False(t, info.LastModified.IsZero())
}

func TestService_PropagatesBackendErrors(t *testing.T) {
	ctx := context.Background()
	transport := errors.New("connection reset")
	backend := new(mocks.Backend)
	svc := blob.NewService(backend, zap.NewNop())

	backend.On("CreateContainer", ctx, "c").Return(transport)
	backend.On("Upload", ctx, "c", "n", []byte("x"), true).Return(transport)
	backend.On("Download", ctx, "c", "n").Return(nil, transport)
	backend.On("Stat", ctx, "c", "n").Return(nil, transport)
	backend.On("DeleteBlob", ctx, "c", "n").Return(transport)
	backend.On("DeleteContainer", ctx, "c").Return(transport)
	backend.On("ListBlobs", ctx, "c").Return(nil, transport)

	_, err := svc.CreateContainer(ctx, "c")
	assert.ErrorIs(t, err, transport)
	_, err = svc.UploadText(ctx, "c", "n", "x")
	assert.ErrorIs(t, err, transport)
	_, err = svc.DownloadBlob(ctx, "c", "n")
	assert.ErrorIs(t, err, transport)
	_, err = svc.GetBlobAsText(ctx, "c", "n", "")
	assert.ErrorIs(t, err, transport)

	exists, err := svc.BlobExists(ctx, "c", "n")
	assert.ErrorIs(t, err, transport)
	assert.False(t, exists)

	assert.ErrorIs(t, svc.DeleteBlob(ctx, "c", "n"), transport)
	assert.ErrorIs(t, svc.DeleteContainer(ctx, "c"), transport)
	_, err = svc.ListBlobs(ctx, "c")
	assert.ErrorIs(t, err, transport)

	backend.AssertExpectations(t)
}

func TestService_AbsorbsNativeSignals(t *testing.T) {
	ctx := context.Background()
	native := fmt.Errorf("ContainerAlreadyExists")
	backend := new(mocks.Backend)
	svc := blob.NewService(backend, zap.NewNop())

	backend.On("CreateContainer", ctx, "c").Return(storage.Conflict("create container", "c", "", native))
	backend.On("Stat", ctx, "c", "n").Return(nil, storage.NotFound("stat", "c", "n", nil))

	container, err := svc.CreateContainer(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "c", container.Name)

	exists, err := svc.BlobExists(ctx, "c", "n")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestService_UploadOverwriteFlag(t *testing.T) {
	ctx := context.Background()
	backend := new(mocks.Backend)
	svc := blob.NewService(backend, zap.NewNop())

	backend.On("Upload", ctx, "c", "n", mock.Anything, true).Return(nil).Once()
	backend.On("Upload", ctx, "c", "n", mock.Anything, false).Return(nil).Once()

	_, err := svc.UploadBlob(ctx, "c", "n", []byte("x"))
	require.NoError(t, err)
	_, err = svc.UploadBlob(ctx, "c", "n", []byte("x"), blob.WithOverwrite(false))
	require.NoError(t, err)

	backend.AssertExpectations(t)
}
