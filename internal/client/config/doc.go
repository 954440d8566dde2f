// Package config loads runtime configuration for the flashly CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. FLASHLY_* environment variables, falling back to a .env file in the
//     working directory.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the flashly API
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-d string   data directory
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "online_check_interval": "3s",
//	  "request_timeout": "15s",
//	  "data_dir": "/home/me/.config/flashly",
//	  "log_level": "debug"
//	}
package config
