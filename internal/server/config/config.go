// Package config handles configuration for the development portal server,
// including defaults, a JSON/YAML overlay, and command-line flags.
package config

import (
	"fmt"
	"time"
)

// Event seeds the attendance store.
type Event struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	TotalRegistered int    `json:"total_registered" yaml:"total_registered"`
}

// Config holds runtime settings for the portal server.
//
// Fields:
//   - ListenAddr: bind address of the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means a random
//     key per process, so tokens do not survive a restart.
//   - AccessTokenValidityDuration: lifetime of issued tokens.
//   - DefaultRole: role given to accounts registered without one.
//   - Events: events known to the attendance API.
type Config struct {
	ListenAddr                  string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	DefaultRole                 string
	ServiceName                 string
	Events                      []Event
	LogLevel                    string
	LogFormat                   string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8000"
	c.SecretKey = ""
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.DefaultRole = "user"
	c.ServiceName = "portal"
	c.Events = []Event{
		{ID: "E001", Name: "Tech Conference 2026", TotalRegistered: 150},
	}
	c.LogLevel = "info"
	c.LogFormat = "json"
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("access token validity must be positive")
	}
	seen := make(map[string]struct{}, len(c.Events))
	for _, e := range c.Events {
		if e.ID == "" {
			return fmt.Errorf("event id must not be empty")
		}
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("duplicate event %q", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
