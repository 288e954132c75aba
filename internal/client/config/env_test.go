package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	env := map[string]string{
		EnvAPIBaseURL:   "https://notes.example.org",
		EnvEnvironment:  "production",
		EnvDatabasePath: "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := &Config{DatabasePath: "keep.db"}
	parseEnv(cfg, lookup)

	assert.Equal(t, "https://notes.example.org", cfg.APIBaseURL)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "keep.db", cfg.DatabasePath, "empty variables must not override")
}
