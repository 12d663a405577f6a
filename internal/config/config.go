// Package config provides configuration loading for the dashboard services.
//
// Settings come from a TOML file with sensible defaults and environment
// variable overrides. The session TTL and the warning thresholds exist purely
// to make the expiry flow observable in a demo timeframe, so they are
// configuration rather than constants.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the complete dashboard configuration.
type Config struct {
	AppName string `toml:"app_name"`
	Env     string `toml:"env"`
	Port    string `toml:"port"`

	Session SessionConfig `toml:"session"`
	Backend BackendConfig `toml:"backend"`
	Storage StorageConfig `toml:"storage"`
}

// SessionConfig controls the session lifecycle timings.
type SessionConfig struct {
	// TTLSecs is the fixed session duration granted on login, refresh and extend.
	TTLSecs int `toml:"ttl_secs"`
	// WarningThresholdSecs is the time remaining below which a warning alert shows.
	WarningThresholdSecs int `toml:"warning_threshold_secs"`
	// CriticalThresholdSecs is the time remaining below which the alert becomes critical.
	CriticalThresholdSecs int `toml:"critical_threshold_secs"`
}

// BackendConfig controls the simulated backend.
type BackendConfig struct {
	// MinLatencyMS and MaxLatencyMS bound the randomized per-call latency.
	MinLatencyMS int `toml:"min_latency_ms"`
	MaxLatencyMS int `toml:"max_latency_ms"`
	// TokenSecret signs the demo JWT session tokens.
	TokenSecret string `toml:"token_secret"`
}

// StorageConfig controls session persistence.
type StorageConfig struct {
	// SQLitePath is the path of the sqlite database holding the session slot.
	SQLitePath string `toml:"sqlite_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AppName: "FinDash",
		Env:     "DEV",
		Port:    ":8080",
		Session: SessionConfig{
			TTLSecs:               300,
			WarningThresholdSecs:  120,
			CriticalThresholdSecs: 60,
		},
		Backend: BackendConfig{
			MinLatencyMS: 200,
			MaxLatencyMS: 1200,
			TokenSecret:  "findash-demo-secret",
		},
		Storage: StorageConfig{
			SQLitePath: "findash.db",
		},
	}
}

// Load reads the configuration file at path, if it exists, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FINDASH_APP_NAME"); v != "" {
		c.AppName = v
	}
	if v := os.Getenv("FINDASH_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("FINDASH_PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("FINDASH_SESSION_TTL_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Session.TTLSecs = secs
		}
	}
	if v := os.Getenv("FINDASH_TOKEN_SECRET"); v != "" {
		c.Backend.TokenSecret = v
	}
	if v := os.Getenv("FINDASH_SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}

	if len(c.Port) > 0 && c.Port[0] != ':' {
		c.Port = ":" + c.Port
	}
}

// Validate checks the configuration for internally consistent values.
func (c *Config) Validate() error {
	if c.Session.TTLSecs <= 0 {
		return fmt.Errorf("config: session ttl_secs must be positive")
	}
	if c.Session.CriticalThresholdSecs <= 0 || c.Session.WarningThresholdSecs <= c.Session.CriticalThresholdSecs {
		return fmt.Errorf("config: warning threshold must exceed critical threshold")
	}
	if c.Session.WarningThresholdSecs >= c.Session.TTLSecs {
		return fmt.Errorf("config: warning threshold must be below the session ttl")
	}
	if c.Backend.MinLatencyMS < 0 || c.Backend.MaxLatencyMS < c.Backend.MinLatencyMS {
		return fmt.Errorf("config: invalid latency bounds")
	}
	if c.Backend.TokenSecret == "" {
		return fmt.Errorf("config: token_secret is required")
	}
	return nil
}

// SessionTTL returns the configured session duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLSecs) * time.Second
}

// MinLatency returns the lower bound of the simulated backend latency.
func (c *Config) MinLatency() time.Duration {
	return time.Duration(c.Backend.MinLatencyMS) * time.Millisecond
}

// MaxLatency returns the upper bound of the simulated backend latency.
func (c *Config) MaxLatency() time.Duration {
	return time.Duration(c.Backend.MaxLatencyMS) * time.Millisecond
}
