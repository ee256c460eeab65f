package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the taskdesk CLI.
//
// RequestTimeout of zero leaves HTTP requests without a client-side
// timeout.
type Config struct {
	ServerBaseURL       string
	StoragePath         string
	WatchInterval       time.Duration
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	LogLevel            string
}

func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080/api"
	c.StoragePath = "taskdesk.db"
	c.WatchInterval = time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 0
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config in
// args, then the flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the merged settings; the watchers cannot run with a
// non-positive interval.
func (c *Config) validate() error {
	if c.WatchInterval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", c.WatchInterval)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}
