package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// RELAY_ADDR points at a running relay; the suite skips when unset.
	RelayAddr string `envconfig:"RELAY_ADDR"`
	// TOKEN_SECRET must match the relay's signing secret so the suite can
	// mint its own credentials.
	TokenSecret string `envconfig:"TOKEN_SECRET" default:"e2e-secret"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
