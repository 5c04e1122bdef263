package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   base URL of the portal API
//	-s string   session store path (":memory:" selects the in-memory store)
//	-t int      request timeout in seconds
//	-l string   log level (debug, info, warn, error)
//
// Only these flags are looked at; see flagx.FilterArgs.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"a", "s", "t", "l"})

	fs := flag.NewFlagSet("tixgo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the portal API")
	storePath := fs.String("s", cfg.StorePath, "session store path")
	timeout := fs.Int("t", int(cfg.RequestTimeout/time.Second), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if *storePath == ":memory:" {
		cfg.StoreDriver = StoreMemory
	} else {
		cfg.StorePath = *storePath
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})

	return nil
}
