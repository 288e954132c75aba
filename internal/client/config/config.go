package config

import (
	"os"
	"strings"
	"time"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

const (
	DevelopmentAPIBaseURL = "http://localhost:5000"
	ProductionAPIBaseURL  = "https://gophnotes-api.example.com"
)

// Config holds runtime settings for the GophNotes CLI.
type Config struct {
	// APIBaseURL is the backend root, e.g. http://localhost:5000. Empty means
	// "derive from Environment".
	APIBaseURL      string
	Environment     Environment
	DatabasePath    string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.Environment = EnvDevelopment
	c.DatabasePath = "gophnotes.db"
	c.RequestTimeout = 30 * time.Second
	c.RefreshInterval = 30 * time.Second
}

// Debug reports whether request/response diagnostics should be logged.
func (c *Config) Debug() bool {
	return c.Environment != EnvProduction
}

func (c *Config) resolveAPIBaseURL() {
	if c.APIBaseURL == "" {
		if c.Environment == EnvProduction {
			c.APIBaseURL = ProductionAPIBaseURL
		} else {
			c.APIBaseURL = DevelopmentAPIBaseURL
		}
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
}

// LoadConfig constructs a Config from defaults, JSON, environment and flags,
// in that order of increasing precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg, os.LookupEnv)
	parseFlags(cfg, os.Args[1:])
	cfg.resolveAPIBaseURL()
	return cfg
}
