// Package config loads the linefix configuration file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// FileName is the config file name without extension
	FileName = "linefix"
	// DefaultTarget is the controller the built-in plans were written for
	DefaultTarget = "backend/src/controllers/payment-gateway.controller.ts"
	// DefaultPlan is used when neither plan nor plan_file is configured
	DefaultPlan = "payment-gateway-hoist"
)

// Config holds the resolved settings for one run
type Config struct {
	Target   string `mapstructure:"target"`
	Plan     string `mapstructure:"plan"`
	PlanFile string `mapstructure:"plan_file"`
	Indent   string `mapstructure:"indent"`

	// Source is the config file that was read, empty when defaults were used
	Source string `mapstructure:"-"`
}

// Load reads the config. An explicit path must exist; otherwise linefix.toml,
// linefix.yaml or linefix.yml is looked up in dir and defaults are used when
// none is present. Relative paths in the file resolve against the file's
// directory.
func Load(explicitPath, dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("target", DefaultTarget)

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
	}

	base := dir
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		base = filepath.Dir(v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if cfg.Plan == "" && cfg.PlanFile == "" {
		cfg.Plan = DefaultPlan
	}
	if err := cfg.Validate(); err != nil {
		if cfg.Source != "" {
			return nil, fmt.Errorf("%s: %w", cfg.Source, err)
		}
		return nil, err
	}

	cfg.Target = resolve(base, cfg.Target)
	if cfg.PlanFile != "" {
		cfg.PlanFile = resolve(base, cfg.PlanFile)
	}
	return &cfg, nil
}

// Validate checks for conflicting or malformed settings
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Target) == "" {
		return fmt.Errorf("target must not be empty")
	}
	if c.Plan != "" && c.PlanFile != "" {
		return fmt.Errorf("cannot use both plan and plan_file")
	}
	if strings.TrimSpace(c.Indent) != "" {
		return fmt.Errorf("indent must contain only spaces or tabs, got %q", c.Indent)
	}
	return nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
