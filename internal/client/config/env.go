package config

const (
	EnvAPIBaseURL   = "GOPHNOTES_API_URL"
	EnvEnvironment  = "GOPHNOTES_ENV"
	EnvDatabasePath = "GOPHNOTES_DB"
)

// parseEnv overlays cfg with non-empty environment variables.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(EnvEnvironment); ok && v != "" {
		cfg.Environment = Environment(v)
	}
	if v, ok := lookup(EnvDatabasePath); ok && v != "" {
		cfg.DatabasePath = v
	}
}
