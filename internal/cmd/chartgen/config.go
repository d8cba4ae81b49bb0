// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"gopkg.in/yaml.v3"

	"github.com/petenewcomb/iobench/internal/chart"
	"github.com/petenewcomb/iobench/internal/logging"
)

// Config is the chart generator configuration.
type Config struct {
	// Logging configuration.
	Logging logging.Config `yaml:"logging"`
	// Chart rendering configuration.
	Chart chart.Config `yaml:"chart"`
	// StartLimit is the exclusive block size bound of the start chart.
	StartLimit datasize.ByteSize `yaml:"start_limit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging:    *logging.DefaultConfig(),
		Chart:      *chart.DefaultConfig(),
		StartLimit: 128 * datasize.B,
	}
}

// LoadConfig loads configuration from a YAML file at the specified path on
// top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}
	return cfg, nil
}
