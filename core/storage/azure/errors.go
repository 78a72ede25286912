package azure

import (
	"errors"
	"net/http"

	"blob-manager/core/storage"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// translate maps Azure Blob error codes onto the storage taxonomy. Anything
// else is returned unchanged.
func translate(err error, op, container, blob string) error {
	if err == nil {
		return nil
	}
	switch {
	case bloberror.HasCode(err, bloberror.ContainerNotFound, bloberror.BlobNotFound, bloberror.ResourceNotFound):
		return storage.NotFound(op, container, blob, err)
	case bloberror.HasCode(err, bloberror.ContainerAlreadyExists, bloberror.BlobAlreadyExists, bloberror.ConditionNotMet):
		return storage.Conflict(op, container, blob, err)
	}

	// HEAD responses carry no body, so the code can be missing.
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusNotFound:
			return storage.NotFound(op, container, blob, err)
		case http.StatusConflict, http.StatusPreconditionFailed:
			return storage.Conflict(op, container, blob, err)
		}
	}
	return err
}
