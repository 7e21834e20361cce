package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the Odoo connection settings read from the environment.
// All four values are required; validation reports every missing variable
// at once so the operator can fix the environment in a single pass.
type Config struct {
	URL      string
	Username string
	Password string
	Database string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		URL:      os.Getenv("ODOO_URL"),
		Username: os.Getenv("ODOO_USERNAME"),
		Password: os.Getenv("ODOO_PASSWORD"),
		Database: os.Getenv("ODOO_DATABASE"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "ODOO_URL")
	}
	if c.Username == "" {
		missing = append(missing, "ODOO_USERNAME")
	}
	if c.Password == "" {
		missing = append(missing, "ODOO_PASSWORD")
	}
	if c.Database == "" {
		missing = append(missing, "ODOO_DATABASE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return fmt.Errorf("ODOO_URL must start with http:// or https:// - got: %s", c.URL)
	}
	return nil
}

// Redacted returns the config with the password masked, for logging.
func (c *Config) Redacted() Config {
	out := *c
	out.Password = "***"
	return out
}
