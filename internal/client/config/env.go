package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config for environment parsing. Empty/unset variables
// leave the current values untouched.
type envConfig struct {
	APIBaseURL     string        `env:"TRAINIA_API_BASE_URL"`
	RequestTimeout time.Duration `env:"TRAINIA_REQUEST_TIMEOUT"`
	DatabaseDSN    string        `env:"TRAINIA_DATABASE_DSN"`
}

// parseEnv overlays cfg with values from the process environment.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabaseDSN != "" {
		cfg.DatabaseDSN = ec.DatabaseDSN
	}
}
