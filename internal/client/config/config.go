package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/common"
)

// Store drivers.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Endpoints holds the API paths, relative to BaseURL.
type Endpoints struct {
	Login      string `json:"login" yaml:"login"`
	Register   string `json:"register" yaml:"register"`
	Me         string `json:"me" yaml:"me"`
	Health     string `json:"health" yaml:"health"`
	Attendance string `json:"attendance" yaml:"attendance"`
	CheckIns   string `json:"checkins" yaml:"checkins"`
}

// Config holds runtime settings for the tixgo client.
//
// Fields:
//   - BaseURL: scheme://host[:port][/prefix] of the portal API.
//   - TokenKey / UserKey: storage keys for the session token and cached profile.
//   - StoreDriver / StorePath: where the session is persisted ("sqlite" file or "memory").
//   - RequestTimeout: upper bound for a single API call.
//   - LoginRedirectDelay / RegisterRedirectDelay: pause before the view switch after a successful submit.
type Config struct {
	BaseURL               string
	Endpoints             Endpoints
	TokenKey              string
	UserKey               string
	StoreDriver           string
	StorePath             string
	RequestTimeout        time.Duration
	LoginRedirectDelay    time.Duration
	RegisterRedirectDelay time.Duration
	LogLevel              string
	LogFormat             string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000"
	c.Endpoints = Endpoints{
		Login:      "/auth/login",
		Register:   "/auth/register",
		Me:         "/auth/me",
		Health:     "/health",
		Attendance: "/api/attendance",
		CheckIns:   "/api/checkins",
	}
	c.TokenKey = common.DefaultTokenKey
	c.UserKey = common.DefaultUserKey
	c.StoreDriver = StoreSQLite
	c.StorePath = "data/tixgo.db"
	c.RequestTimeout = 10 * time.Second
	c.LoginRedirectDelay = 1500 * time.Millisecond
	c.RegisterRedirectDelay = 2000 * time.Millisecond
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	if _, err := common.OriginOf(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if c.TokenKey == "" {
		return fmt.Errorf("token key must not be empty")
	}
	switch c.StoreDriver {
	case StoreSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("store path must not be empty for %q driver", StoreSQLite)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	return nil
}

// LoadConfig constructs a Config: defaults first, then the optional config
// file (-c / -config), then command-line flags. Later sources win.
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
