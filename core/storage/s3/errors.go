package s3

import (
	"errors"

	"blob-manager/core/storage"

	"github.com/aws/smithy-go"
)

// translate maps S3 API error codes onto the storage taxonomy. Anything
// else is returned unchanged.
func translate(err error, op, bucket, key string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	// HeadObject has no body, so a missing key arrives as a bare "NotFound".
	case "NoSuchBucket", "NoSuchKey", "NotFound":
		return storage.NotFound(op, bucket, key, err)
	// BucketAlreadyExists means another account owns the name; it stays a plain error.
	case "BucketAlreadyOwnedByYou", "PreconditionFailed", "ConditionalRequestConflict":
		return storage.Conflict(op, bucket, key, err)
	}
	return err
}
