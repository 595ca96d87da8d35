package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	jsonPath := writeTempFile(t, "flag.json", `{
		"endpoint_addr_grpc": "www.example:9000",
		"database_dsn": "postgres://db",
		"storage_backend": "memory",
		"secret_key": "my_secret_key",
		"message_secret": "my_message_secret",
		"access_token_validity_duration": "1m",
		"refresh_token_validity_duration": 180000000000,
		"s3_root_user": "user",
		"s3_root_password": "password",
		"s3_bucket": "bucket",
		"s3_region": "region",
		"s3_base_endpoint": "base_endpoint",
		"log_level": "warn"
	}`)

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", jsonPath}

		cfg := &Config{}
		parseFile(cfg)

		assert.Equal(t, Config{
			EndpointAddrGRPC:             "www.example:9000",
			DatabaseDSN:                  "postgres://db",
			StorageBackend:               StorageMemory,
			SecretKey:                    "my_secret_key",
			MessageSecret:                "my_message_secret",
			AccessTokenValidityDuration:  time.Minute,
			RefreshTokenValidityDuration: 3 * time.Minute,
			S3RootUser:                   "user",
			S3RootPassword:               "password",
			S3Bucket:                     "bucket",
			S3Region:                     "region",
			S3BaseEndpoint:               "base_endpoint",
			LogLevel:                     "warn",
		}, *cfg)
	})

	t.Run("loads partial toml", func(t *testing.T) {
		path := writeTempFile(t, "cfg.toml", `
secret_key = "toml_secret"
access_token_validity_duration = "5m"
`)
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "toml_secret", cfg.SecretKey)
		assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, 3*time.Minute, cfg.RefreshTokenValidityDuration)
	})

	t.Run("no config flag leaves values alone", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrGRPC: "defaults:1234", SecretKey: "key"}
		parseFile(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrGRPC)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := writeTempFile(t, "bad.json", `{ this is not valid json`)
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "absent.json")}

		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
