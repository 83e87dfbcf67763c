package config

import "time"

// Config holds runtime settings for the FitTrack CLI.
//
// Fields:
//   - APIBaseURL: base address of the FitTrack REST API.
//   - RequestTimeout: per-request HTTP timeout.
//   - DataDir: directory for local state (vault database, device secret).
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DataDir        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.DataDir = "fittrack-data"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present), and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
