package metrics

import (
	"context"
	"testing"

	"blob-manager/core/storage"
	"blob-manager/core/storage/mocks"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBackend_CountsResults(t *testing.T) {
	ctx := context.Background()
	next := new(mocks.Backend)
	reg := prometheus.NewRegistry()
	b := NewBackend(next, reg)

	next.On("Download", ctx, "assets", "a.txt").Return([]byte("hello"), nil)
	next.On("Download", ctx, "assets", "missing").Return(nil, storage.NotFound("download", "assets", "missing", nil))
	next.On("CreateContainer", ctx, "assets").Return(storage.Conflict("create container", "assets", "", nil))
	next.On("DeleteBlob", ctx, "assets", "a.txt").Return(assert.AnError)

	data, err := b.Download(ctx, "assets", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	_, err = b.Download(ctx, "assets", "missing")
	assert.True(t, storage.IsNotFound(err))

	assert.True(t, storage.IsConflict(b.CreateContainer(ctx, "assets")))
	assert.ErrorIs(t, b.DeleteBlob(ctx, "assets", "a.txt"), assert.AnError)

	assert.Equal(t, 1.0, testutil.ToFloat64(b.ops.WithLabelValues("download", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.ops.WithLabelValues("download", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.ops.WithLabelValues("create_container", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.ops.WithLabelValues("delete_blob", "error")))
	assert.Equal(t, 3, testutil.CollectAndCount(b.duration))
}

func TestBackend_PassesThrough(t *testing.T) {
	ctx := context.Background()
	next := new(mocks.Backend)
	b := NewBackend(next, prometheus.NewRegistry())

	next.On("Upload", ctx, "assets", "a.txt", []byte("x"), false).Return(nil)
	next.On("ListBlobs", ctx, "assets").Return([]string{"a.txt"}, nil)
	next.On("Stat", ctx, "assets", "a.txt").Return(&storage.BlobInfo{Name: "a.txt", Size: 1}, nil)
	next.On("DeleteContainer", ctx, "assets").Return(nil)

	require.NoError(t, b.Upload(ctx, "assets", "a.txt", []byte("x"), false))

	names, err := b.ListBlobs(ctx, "assets")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, names)

	info, err := b.Stat(ctx, "assets", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Size)

	require.NoError(t, b.DeleteContainer(ctx, "assets"))
	next.AssertExpectations(t)
	next.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}
