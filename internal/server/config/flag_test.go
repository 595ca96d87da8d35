package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	defaults := func() Config {
		var c Config
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name    string
		args    []string
		want    func(*Config)
		wantErr bool
	}{
		{
			name: "every flag",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "db", "-storage", "memory", "-s", "secret", "-m", "msg",
				"-t", "5", "-r", "60", "-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1",
				"-e", "http://endpoint", "-l", "debug",
			},
			want: func(c *Config) {
				*c = Config{
					EndpointAddrGRPC:             "127.0.0.1:9090",
					DatabaseDSN:                  "db",
					StorageBackend:               StorageMemory,
					SecretKey:                    "secret",
					MessageSecret:                "msg",
					AccessTokenValidityDuration:  5 * time.Minute,
					RefreshTokenValidityDuration: time.Hour,
					S3RootUser:                   "user",
					S3RootPassword:               "password",
					S3Bucket:                     "bucket",
					S3Region:                     "us-west-1",
					S3BaseEndpoint:               "http://endpoint",
					LogLevel:                     "debug",
				}
			},
		},
		{name: "no flags keeps defaults", want: func(*Config) {}},
		{
			name: "unknown flags are skipped",
			args: []string{"-storage", "memory", "-verbose", "-x", "1"},
			want: func(c *Config) { c.StorageBackend = StorageMemory },
		},
		{
			name: "config file flag is left to the file loader",
			args: []string{"-c", "gliphic.toml", "-l", "warn"},
			want: func(c *Config) { c.LogLevel = "warn" },
		},
		{name: "duration is whole minutes", args: []string{"-t", "soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = append([]string{"gliphic-server"}, tt.args...)
			got := defaults()

			if tt.wantErr {
				require.Panics(t, func() { parseFlags(&got) })
				return
			}
			require.NotPanics(t, func() { parseFlags(&got) })
			want := defaults()
			tt.want(&want)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}
