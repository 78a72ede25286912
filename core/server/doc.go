// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines
// the settings it reads: bind address, API key, whether /metrics is exposed
// and how long graceful shutdown may take.
//
// # Usage
//
// This package is embedded by core/config and read by cmd/start.
package server
