// Package config loads runtime configuration for the taskdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the task service API
//	-d string   path of the local session database
//	-w int      credential watch interval (seconds)
//	-i int      online status check interval (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "3s" or
// integer nanoseconds. Absent keys keep the default:
//
//	{
//	  "server_base_url": "http://localhost:8080/api",
//	  "storage_path": "taskdesk.db",
//	  "watch_interval": "1s",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
package config
