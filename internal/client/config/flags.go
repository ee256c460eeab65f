package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/flagx"
)

var ownFlags = []string{"-a", "-d", "-w", "-i", "-l"}

func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("taskdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the task service API")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "path of the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	watch := fs.Int("w", int(cfg.WatchInterval.Seconds()), "credential watch interval (in seconds)")
	online := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// only explicitly given interval flags override, so sub-second values
	// from JSON survive
	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			cfg.WatchInterval, err = seconds("w", *watch)
		case "i":
			cfg.OnlineCheckInterval, err = seconds("i", *online)
		}
	})
	return err
}

func seconds(name string, n int) (time.Duration, error) {
	if n <= 0 {
		return 0, fmt.Errorf("-%s must be a positive number of seconds, got %d", name, n)
	}
	return time.Duration(n) * time.Second, nil
}
