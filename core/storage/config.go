package storage

// Provider names accepted in Config.Provider.
const (
	ProviderAzure  = "azure"
	ProviderMinio  = "minio"
	ProviderS3     = "s3"
	ProviderMemory = "memory"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Provider selects the backend (azure, minio, s3, memory).
	Provider string `mapstructure:"provider" default:"azure"`
	// ConnectionString is the account connection string used by the azure provider.
	ConnectionString string `mapstructure:"connection_string" default:""`
	// Endpoint is the URL of the storage service (minio, s3).
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Region is the location of the buckets (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
