package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// parseFlags populates Config from the flags it knows about in args; other
// flags are filtered out first so they cannot make parsing fail.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-e", "-d", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	env := fs.String("e", string(cfg.Environment), "environment (development|production)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	refresh := fs.Int("r", int(cfg.RefreshInterval.Seconds()), "notes refresh interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only explicitly passed flags are applied: durations below one second
	// coming from JSON would otherwise be truncated to zero.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "e":
			cfg.Environment = Environment(*env)
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "r":
			cfg.RefreshInterval = time.Duration(*refresh) * time.Second
		}
	})
}
