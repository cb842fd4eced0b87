// Package config handles bibstat configuration.
//
// Settings are read from a YAML file, then overridden by environment
// variables (a .env file in the working directory is loaded first), then by
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrInvalidConfig is returned when a setting cannot be parsed.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every bibstat setting.
type Config struct {
	DataFile   string  `yaml:"data_file,omitempty"`  // DBLP XML or JSONL snapshot
	StaffFile  string  `yaml:"staff_file,omitempty"` // one internal staff name per line
	LogLevel   string  `yaml:"log_level,omitempty"`
	LogFormat  string  `yaml:"log_format,omitempty"`
	ListenAddr string  `yaml:"listen_addr,omitempty"`
	RateLimit  float64 `yaml:"rate_limit"` // requests per second; 0 disables
	RateBurst  int     `yaml:"rate_burst"`
}

// Environment variables that override the config file.
const (
	EnvData      = "BIBSTAT_DATA"
	EnvStaff     = "BIBSTAT_STAFF"
	EnvLogLevel  = "BIBSTAT_LOG_LEVEL"
	EnvLogFormat = "BIBSTAT_LOG_FORMAT"
	EnvAddr      = "BIBSTAT_ADDR"
	EnvRateLimit = "BIBSTAT_RATE_LIMIT"
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		ListenAddr: ":8080",
		RateLimit:  20,
		RateBurst:  40,
	}
}

// applyDefaults fills empty string fields from Default. Numeric fields start
// from Default before the file is decoded, so an explicit 0 is kept.
func (c *Config) applyDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
}

// applyEnv overrides settings from environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for env, dst := range map[string]*string{
		EnvData:      &c.DataFile,
		EnvStaff:     &c.StaffFile,
		EnvLogLevel:  &c.LogLevel,
		EnvLogFormat: &c.LogFormat,
		EnvAddr:      &c.ListenAddr,
	} {
		if v, ok := lookup(env); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate < 0 {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvRateLimit, v)
		}
		c.RateLimit = rate
	}
	c.DataFile = ExpandTilde(c.DataFile)
	c.StaffFile = ExpandTilde(c.StaffFile)
	return nil
}

// Validate checks settings that have a fixed set of values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("%w: rate_limit and rate_burst must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ExpandTilde replaces a leading ~ with the user's home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
