// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dacin21/exact-lp/lpsolve"
)

// Config is the merged CLI configuration.
type Config struct {
	Strategy         string `yaml:"strategy"`
	Seed             int64  `yaml:"seed"`
	MoveToFront      bool   `yaml:"move_to_front"`
	CheckCertificate bool   `yaml:"check_certificate"`
	Workers          int    `yaml:"workers"`
	LogLevel         string `yaml:"log_level"`
	Trace            bool   `yaml:"trace"`
	MetricsOut       string `yaml:"metrics_out"`
}

// DefaultConfig returns the built-in defaults. Seed 0 means clock-seeded.
func DefaultConfig() Config {
	return Config{
		Strategy:         lpsolve.DefaultOptions().Strategy.String(),
		CheckCertificate: true,
		Workers:          4,
		LogLevel:         "warn",
	}
}

// LoadConfig merges defaults, the optional YAML file at path and LPSOLVE_*
// environment variables. Flags are applied by the caller before Validate.
func LoadConfig(path string) (Config, error) {
	var cfg = DefaultConfig()
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := loadConfigFromEnv(&cfg, os.Getenv); err != nil {
		return cfg, fmt.Errorf("load config env: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var dec = yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func loadConfigFromEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("LPSOLVE_STRATEGY"); v != "" {
		cfg.Strategy = v
	}
	if v := getenv("LPSOLVE_SEED"); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LPSOLVE_SEED: %w", err)
		}
		cfg.Seed = i
	}
	if v := getenv("LPSOLVE_MOVE_TO_FRONT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LPSOLVE_MOVE_TO_FRONT: %w", err)
		}
		cfg.MoveToFront = b
	}
	if v := getenv("LPSOLVE_CHECK_CERTIFICATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LPSOLVE_CHECK_CERTIFICATE: %w", err)
		}
		cfg.CheckCertificate = b
	}
	if v := getenv("LPSOLVE_WORKERS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LPSOLVE_WORKERS: %w", err)
		}
		cfg.Workers = i
	}
	if v := getenv("LPSOLVE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("LPSOLVE_TRACE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LPSOLVE_TRACE: %w", err)
		}
		cfg.Trace = b
	}
	if v := getenv("LPSOLVE_METRICS_OUT"); v != "" {
		cfg.MetricsOut = v
	}

	return nil
}

// Validate rejects values no command can run with.
func (c Config) Validate() error {
	if _, err := lpsolve.ParseStrategy(c.Strategy); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if _, err := c.level(); err != nil {
		return err
	}

	return nil
}

func (c Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
