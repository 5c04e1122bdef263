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

// FileConfig is the on-disk shape of the server config, JSON or YAML.
// Empty fields keep the current value; a non-empty events list replaces
// the defaults.
type FileConfig struct {
	ListenAddr                  string         `json:"listen_addr" yaml:"listen_addr"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	DefaultRole                 string         `json:"default_role" yaml:"default_role"`
	ServiceName                 string         `json:"service_name" yaml:"service_name"`
	Events                      []Event        `json:"events" yaml:"events"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
	LogFormat                   string         `json:"log_format" yaml:"log_format"`
}

// parseFile loads the file named by -c / -config, if any.
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

	for _, kv := range []struct {
		dst *string
		v   string
	}{
		{&cfg.ListenAddr, fc.ListenAddr},
		{&cfg.SecretKey, fc.SecretKey},
		{&cfg.DefaultRole, fc.DefaultRole},
		{&cfg.ServiceName, fc.ServiceName},
		{&cfg.LogLevel, fc.LogLevel},
		{&cfg.LogFormat, fc.LogFormat},
	} {
		if kv.v != "" {
			*kv.dst = kv.v
		}
	}
	if fc.AccessTokenValidityDuration.Duration > 0 {
		cfg.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if len(fc.Events) > 0 {
		cfg.Events = fc.Events
	}
	return nil
}
