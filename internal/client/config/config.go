package config

import "time"

// Config holds runtime settings for the TrainIA CLI.
//
// Fields:
//   - APIBaseURL: base address of the TrainIA HTTP API; all endpoint paths
//     are relative to it.
//   - RequestTimeout: upper bound on one API round trip.
//   - DatabaseDSN: path/DSN of the local sqlite database holding the session
//     token.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabaseDSN    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.DatabaseDSN = "trainia.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if a config file is given), environment variables, and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
