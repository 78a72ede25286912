package minio

import (
	"errors"
	"net/http"

	"blob-manager/core/storage"

	miniogo "github.com/minio/minio-go/v7"
)

// translate maps S3 "not found" and "already exists" responses onto the
// storage taxonomy. Anything else is returned unchanged.
func translate(err error, op, bucket, key string) error {
	if err == nil {
		return nil
	}

	var resp miniogo.ErrorResponse
	if !errors.As(err, &resp) {
		return err
	}

	switch resp.Code {
	case "NoSuchBucket", "NoSuchKey", "NotFound":
		return storage.NotFound(op, bucket, key, err)
	case "BucketAlreadyOwnedByYou", "PreconditionFailed":
		return storage.Conflict(op, bucket, key, err)
	case "BucketAlreadyExists":
		// The name belongs to another account, so the bucket is not usable.
		return err
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return storage.NotFound(op, bucket, key, err)
	case http.StatusConflict, http.StatusPreconditionFailed:
		return storage.Conflict(op, bucket, key, err)
	}
	return err
}
