package storage

// Config holds configuration for the feed snapshot archive.
type Config struct {
	// Enabled turns raw-feed snapshot archiving on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the S3-compatible endpoint (host:port, scheme optional).
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey is the access key for the storage.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret key for the storage.
	SecretKey string `mapstructure:"secret_key" default:""`
	// Bucket is the bucket snapshots are written to.
	Bucket string `mapstructure:"bucket" default:"catalog-archive"`
	// UseSSL enables TLS for the storage connection.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Region is the storage region.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
