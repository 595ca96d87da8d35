package config

import "time"

// Config holds runtime settings for the gliphic CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabasePath: SQLite file holding the offline login profile.
//   - LogFile: file the CLI logs to; stdout belongs to the REPL.
//   - LogLevel: debug, info, warn or error.
//   - ImageDir: directory downloaded group images are saved to.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabasePath        string
	LogFile             string
	LogLevel            string
	ImageDir            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "gliphic.db"
	c.LogFile = "logs/gliphic.log"
	c.LogLevel = "info"
	c.ImageDir = "images"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
