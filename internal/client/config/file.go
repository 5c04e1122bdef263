package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tixgo/internal/flagx"
	"github.com/dmitrijs2005/tixgo/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file, JSON or YAML.
// Durations use timex.Duration, so "1500ms" and integer nanoseconds both work.
// Empty fields leave the current value untouched.
type FileConfig struct {
	BaseURL               string         `json:"base_url" yaml:"base_url"`
	Endpoints             Endpoints      `json:"endpoints" yaml:"endpoints"`
	TokenKey              string         `json:"token_key" yaml:"token_key"`
	UserKey               string         `json:"user_key" yaml:"user_key"`
	StoreDriver           string         `json:"store_driver" yaml:"store_driver"`
	StorePath             string         `json:"store_path" yaml:"store_path"`
	RequestTimeout        timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LoginRedirectDelay    timex.Duration `json:"login_redirect_delay" yaml:"login_redirect_delay"`
	RegisterRedirectDelay timex.Duration `json:"register_redirect_delay" yaml:"register_redirect_delay"`
	LogLevel              string         `json:"log_level" yaml:"log_level"`
	LogFormat             string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c / -config, if any.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}
	return loadFile(cfg, path)
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.Endpoints.Login, fc.Endpoints.Login)
	setString(&cfg.Endpoints.Register, fc.Endpoints.Register)
	setString(&cfg.Endpoints.Me, fc.Endpoints.Me)
	setString(&cfg.Endpoints.Health, fc.Endpoints.Health)
	setString(&cfg.Endpoints.Attendance, fc.Endpoints.Attendance)
	setString(&cfg.Endpoints.CheckIns, fc.Endpoints.CheckIns)
	setString(&cfg.TokenKey, fc.TokenKey)
	setString(&cfg.UserKey, fc.UserKey)
	setString(&cfg.StoreDriver, fc.StoreDriver)
	setString(&cfg.StorePath, fc.StorePath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)

	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LoginRedirectDelay.Duration > 0 {
		cfg.LoginRedirectDelay = fc.LoginRedirectDelay.Duration
	}
	if fc.RegisterRedirectDelay.Duration > 0 {
		cfg.RegisterRedirectDelay = fc.RegisterRedirectDelay.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
