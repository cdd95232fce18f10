package main

import (
	"log/slog"
	"strings"
	"sync"

	"docket/internal/config"
	"docket/internal/logging"
	"docket/internal/scanlog"
	"docket/internal/scanner"
	"docket/internal/vin"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) decoder() (*vin.Decoder, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return vin.NewDecoder(logger), nil
}

func (c *commandContext) scannerClient() (*scanner.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return scanner.New(cfg, logger)
}

// auditStore opens the scan audit database; the caller owns closing it.
func (c *commandContext) auditStore() (*scanlog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return scanlog.Open(cfg.Paths.ScansDir)
}
