package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScanner(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.ScansDir == "" {
		return errors.New("paths.scans_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateScanner() error {
	if c.Scanner.Resolution < 75 || c.Scanner.Resolution > 1200 {
		return fmt.Errorf("scanner.resolution must be between 75 and 1200 dpi, got %d", c.Scanner.Resolution)
	}
	switch c.Scanner.Mode {
	case "Color", "Gray", "Lineart":
		return nil
	default:
		return fmt.Errorf("scanner.mode must be Color, Gray, or Lineart, got %q", c.Scanner.Mode)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
