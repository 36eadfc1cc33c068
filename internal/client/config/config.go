package config

import "time"

// Config holds runtime settings for the itemkeeper CLI.
//
// Fields:
//   - ServerEndpointURL: base URL of the backend HTTP API.
//   - LocalStorePath: path of the sqlite file holding session metadata.
//   - RequestTimeout: per-request timeout for remote calls.
type Config struct {
	ServerEndpointURL string
	LocalStorePath    string
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080"
	c.LocalStorePath = "itemkeeper.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
