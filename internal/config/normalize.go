package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScanner()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.ScansDir) == "" {
		c.Paths.ScansDir = defaultScansDir
	}
	if c.Paths.ScansDir, err = expandPath(c.Paths.ScansDir); err != nil {
		return fmt.Errorf("paths.scans_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScanner() {
	c.Scanner.Device = strings.TrimSpace(c.Scanner.Device)
	c.Scanner.DeviceMatch = strings.ToLower(strings.TrimSpace(c.Scanner.DeviceMatch))
	if c.Scanner.DeviceMatch == "" {
		c.Scanner.DeviceMatch = defaultDeviceMatch
	}
	if c.Scanner.Resolution <= 0 {
		c.Scanner.Resolution = defaultResolution
	}
	c.Scanner.Mode = strings.TrimSpace(c.Scanner.Mode)
	if c.Scanner.Mode == "" {
		c.Scanner.Mode = defaultScanMode
	}
	if c.Scanner.ScanTimeout <= 0 {
		c.Scanner.ScanTimeout = defaultScanTimeout
	}
	if c.Scanner.DetectTimeout <= 0 {
		c.Scanner.DetectTimeout = defaultDetectTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
