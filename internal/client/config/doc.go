// Package config loads runtime configuration for the tixgo client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml/.yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the portal API
//	-s string   session store path (":memory:" keeps the session in memory)
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # File schema
//
//	{
//	  "base_url": "https://dina.theokaitou.my.id",
//	  "endpoints": {"login": "/auth/login", "me": "/auth/me"},
//	  "token_key": "tixgo_token",
//	  "store_path": "data/tixgo.db",
//	  "request_timeout": "10s",
//	  "login_redirect_delay": "1500ms"
//	}
//
// Environment variables are not read.
package config
