package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := Path(), "/custom/config/bibstat/config.yml"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := Path(), filepath.Join(home, ".config", "bibstat", "config.yml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("LoadFile() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `data_file: /data/dblp.xml
staff_file: /data/staff.txt
log_format: json
rate_limit: 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.DataFile != "/data/dblp.xml" || cfg.StaffFile != "/data/staff.txt" {
		t.Errorf("paths = %q, %q", cfg.DataFile, cfg.StaffFile)
	}
	if cfg.LogFormat != "json" || cfg.RateLimit != 5 {
		t.Errorf("LogFormat = %q, RateLimit = %v", cfg.LogFormat, cfg.RateLimit)
	}
	// Unset fields keep their defaults
	if cfg.LogLevel != "info" || cfg.ListenAddr != ":8080" || cfg.RateBurst != 40 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadFile_RateLimitZero(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantRate  float64
		wantBurst int
	}{
		{"explicit zero disables", "rate_limit: 0\n", 0, 40},
		{"zero burst kept", "rate_burst: 0\n", 20, 0},
		{"unset keeps default", "log_level: debug\n", 20, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if cfg.RateLimit != tt.wantRate || cfg.RateBurst != tt.wantBurst {
				t.Errorf("RateLimit = %v, RateBurst = %d, want %v, %d", cfg.RateLimit, cfg.RateBurst, tt.wantRate, tt.wantBurst)
			}
		})
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("data_file: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadFile() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("data_file: /from/file.xml\nlisten_addr: :9000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvData, "/from/env.xml")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvRateLimit, "2.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataFile != "/from/env.xml" {
		t.Errorf("DataFile = %q, want env override", cfg.DataFile)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want file value", cfg.ListenAddr)
	}
	if cfg.LogLevel != "debug" || cfg.RateLimit != 2.5 {
		t.Errorf("LogLevel = %q, RateLimit = %v", cfg.LogLevel, cfg.RateLimit)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv(EnvRateLimit, "fast")
	if _, err := Load(filepath.Join(t.TempDir(), "none.yml")); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"json", func(c *Config) { c.LogFormat = "JSON" }, false},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"negative burst", func(c *Config) { c.RateBurst = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"~/data.xml", filepath.Join(home, "data.xml")},
		{"~", home},
		{"/abs/path", "/abs/path"},
		{"~other/x", "~other/x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandTilde(tt.in); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
