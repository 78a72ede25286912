// Package middleware groups the HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting every route registered after it.
//   - rayid: a unique request id (RayID) per request, stored in the context
//     locals and echoed in the X-Ray-ID response header.
//
// RayID must be registered first so every later log line can carry it.
package middleware
