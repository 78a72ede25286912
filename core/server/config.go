package server

import "net"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to. Empty means all interfaces.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool `mapstructure:"metrics_enabled" default:"true"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	port := c.Port
	if port == "" {
		port = "8080"
	}
	return net.JoinHostPort(c.Host, port)
}
