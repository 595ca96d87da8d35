package config

import (
	"github.com/dmitrijs2005/gliphic/internal/filex"
	"github.com/dmitrijs2005/gliphic/internal/flagx"
	"github.com/dmitrijs2005/gliphic/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration. Durations
// accept strings such as "1m" or integer nanoseconds.
type FileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" toml:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn" toml:"database_dsn"`
	StorageBackend               string         `json:"storage_backend" toml:"storage_backend"`
	SecretKey                    string         `json:"secret_key" toml:"secret_key"`
	MessageSecret                string         `json:"message_secret" toml:"message_secret"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" toml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" toml:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user" toml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" toml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" toml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" toml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" toml:"s3_base_endpoint"`
	LogLevel                     string         `json:"log_level" toml:"log_level"`
}

// parseFile overlays the file named by -c/-config onto config. Only the keys
// present in the file change. An unreadable or invalid file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := filex.DecodeConfigFile(path, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.MessageSecret, c.MessageSecret)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
