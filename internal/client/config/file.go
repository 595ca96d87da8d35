package config

import (
	"github.com/dmitrijs2005/gliphic/internal/filex"
	"github.com/dmitrijs2005/gliphic/internal/flagx"
	"github.com/dmitrijs2005/gliphic/internal/timex"
)

// FileConfig is the on-disk shape of the CLI configuration. The interval
// accepts strings like "3s" or integer nanoseconds.
type FileConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr" toml:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" toml:"online_check_interval"`
	DatabasePath        string         `json:"database_path" toml:"database_path"`
	LogFile             string         `json:"log_file" toml:"log_file"`
	LogLevel            string         `json:"log_level" toml:"log_level"`
	ImageDir            string         `json:"image_dir" toml:"image_dir"`
}

// parseFile overlays cfg with the file named by -c/-config. Keys missing
// from the file keep their current value. Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := filex.DecodeConfigFile(path, &fc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, fc.ServerEndpointAddr)
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	setString(&cfg.DatabasePath, fc.DatabasePath)
	setString(&cfg.LogFile, fc.LogFile)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.ImageDir, fc.ImageDir)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
