// Package metrics instruments a storage.Backend with Prometheus counters and
// latency histograms.
//
// # Metrics
//
//   - blob_storage_operations_total{operation, result}
//   - blob_storage_operation_duration_seconds{operation}
//
// result is one of ok, not_found, conflict or error.
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	backend = metrics.NewBackend(backend, reg)
package metrics

import (
	"context"
	"time"

	"blob-manager/core/storage"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "blob_storage"

// Backend decorates a storage.Backend with Prometheus metrics.
type Backend struct {
	next     storage.Backend
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewBackend wraps next and registers its collectors with reg.
func NewBackend(next storage.Backend, reg prometheus.Registerer) *Backend {
	b := &Backend{
		next: next,
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Storage backend operations by result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Storage backend operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(b.ops, b.duration)
	return b
}

func (b *Backend) observe(op string, start time.Time, err error) {
	b.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	b.ops.WithLabelValues(op, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case storage.IsNotFound(err):
		return "not_found"
	case storage.IsConflict(err):
		return "conflict"
	default:
		return "error"
	}
}

func (b *Backend) CreateContainer(ctx context.Context, name string) (err error) {
	defer func(start time.Time) { b.observe("create_container", start, err) }(time.Now())
	return b.next.CreateContainer(ctx, name)
}

func (b *Backend) DeleteContainer(ctx context.Context, name string) (err error) {
	defer func(start time.Time) { b.observe("delete_container", start, err) }(time.Now())
	return b.next.DeleteContainer(ctx, name)
}

func (b *Backend) Upload(ctx context.Context, container, blob string, data []byte, overwrite bool) (err error) {
	defer func(start time.Time) { b.observe("upload", start, err) }(time.Now())
	return b.next.Upload(ctx, container, blob, data, overwrite)
}

func (b *Backend) Download(ctx context.Context, container, blob string) (data []byte, err error) {
	defer func(start time.Time) { b.observe("download", start, err) }(time.Now())
	return b.next.Download(ctx, container, blob)
}

func (b *Backend) Stat(ctx context.Context, container, blob string) (info *storage.BlobInfo, err error) {
	defer func(start time.Time) { b.observe("stat", start, err) }(time.Now())
	return b.next.Stat(ctx, container, blob)
}

func (b *Backend) DeleteBlob(ctx context.Context, container, blob string) (err error) {
	defer func(start time.Time) { b.observe("delete_blob", start, err) }(time.Now())
	return b.next.DeleteBlob(ctx, container, blob)
}

func (b *Backend) ListBlobs(ctx context.Context, container string) (names []string, err error) {
	defer func(start time.Time) { b.observe("list_blobs", start, err) }(time.Now())
	return b.next.ListBlobs(ctx, container)
}

var _ storage.Backend = (*Backend)(nil)
