// Package blob implements the object storage facade.
//
// Service wraps one storage.Backend and exposes container and blob
// operations in the vocabulary of the caller: text uploads are UTF-8 encoded,
// text downloads are decoded with a named encoding, existence checks return a
// boolean and creating an existing container returns the existing handle.
// Every other error, including transport and authentication failures, is
// returned to the caller unchanged.
//
// The facade keeps no local state besides the backend handle, adds no
// retries and no caching. Each method performs exactly one backend call.
//
// # HTTP
//
// Handler mounts the facade on a Fiber router:
//
//	PUT    /containers/:container               create (idempotent)
//	DELETE /containers/:container               delete with all blobs
//	GET    /containers/:container/blobs         list blob names
//	PUT    /containers/:container/blobs/*       upload (?overwrite=false)
//	GET    /containers/:container/blobs/*       download (?encoding= for text)
//	HEAD   /containers/:container/blobs/*       existence
//	DELETE /containers/:container/blobs/*       delete
//	GET    /containers/:container/properties/*  size, content type, etag
//
// # Usage
//
//	svc, err := blob.New(ctx, cfg.Storage, logger)
//	if err != nil {
//	    return err
//	}
//	_, _ = svc.CreateContainer(ctx, "t1")
//	_, _ = svc.UploadText(ctx, "t1", "f.txt", "hello")
//	text, _ := svc.GetBlobAsText(ctx, "t1", "f.txt", "")
package blob
