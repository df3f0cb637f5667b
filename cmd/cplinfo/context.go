package main

import (
	"log/slog"
	"os"

	"cplinfo/internal/config"
	"cplinfo/internal/labels"
	"cplinfo/internal/logging"
)

// commandContext carries lazily resolved configuration and logging shared by
// every command. Flags are bound before cobra parses, so values are read
// only inside RunE functions.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	cfg        *config.Config
	configPath string
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, path, _, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.configPath = path
	return cfg, nil
}

// ensureLogger builds the diagnostic logger. Diagnostics always go to
// stderr; stdout is reserved for the report.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if *c.logLevelFlag != "" {
		level = *c.logLevelFlag
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: cfg.Logging.Format,
		Writer: os.Stderr,
	})
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

// registry resolves the UL label registry: explicit flag first, then the
// configured path, then the embedded registry.
func (c *commandContext) registry(labelsFlag string) (*labels.Registry, error) {
	if labelsFlag != "" {
		return labels.LoadFile(labelsFlag)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Labels.RegistryPath != "" {
		return labels.LoadFile(cfg.Labels.RegistryPath)
	}
	return labels.Default(), nil
}
