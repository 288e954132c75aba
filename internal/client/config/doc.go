// Package config loads runtime configuration for the GophNotes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (GOPHNOTES_API_URL, GOPHNOTES_ENV, GOPHNOTES_DB).
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-e string   environment: development | production
//	-d string   path to the local SQLite database
//	-t int      request timeout (seconds)
//	-r int      notes refresh interval (seconds)
//
// # JSON schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "environment": "development",
//	  "database_path": "gophnotes.db",
//	  "request_timeout": "30s",
//	  "refresh_interval": "30s"
//	}
//
// When no base URL is configured anywhere, it is derived from the
// environment: production points at ProductionAPIBaseURL, anything else at
// DevelopmentAPIBaseURL.
package config
