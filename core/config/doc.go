// Package config provides configuration management for blob-manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded with godotenv, overriding the process
// environment).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (host, port, API key, metrics)
//   - Storage: backend provider and credentials
//   - Log: Logging level and format
//
// Defaults come from the `default` struct tags. Environment keys are the
// nested keys upper-cased with dots replaced by underscores, so
// storage.connection_string is read from STORAGE_CONNECTION_STRING, falling
// back to AZURE_STORAGE_CONNECTION_STRING.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
