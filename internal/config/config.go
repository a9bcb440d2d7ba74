// Package config loads the optional json5 settings file
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// DefaultFile is read from the working directory when --config is not given
const DefaultFile = "nfl-scraper.json5"

// Config holds settings that rarely change between runs. Command-line flags
// take precedence over anything set here.
type Config struct {
	BaseURL           string  `json:"base_url,omitempty"`
	UserAgent         string  `json:"user_agent,omitempty"`
	TimeoutSeconds    int     `json:"timeout_seconds,omitempty"`
	DelayMinMS        int     `json:"delay_min_ms,omitempty"`
	DelayMaxMS        int     `json:"delay_max_ms,omitempty"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty"`
	BypassCloudflare  bool    `json:"bypass_cloudflare,omitempty"`
	StartYear         int     `json:"start_year,omitempty"`
	Output            string  `json:"output,omitempty"`
	Format            string  `json:"format,omitempty"`
}

// Timeout returns the HTTP timeout, or zero when unset
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Delays returns the request spacing bounds. ok is false when neither is set.
func (c Config) Delays() (lo, hi time.Duration, ok bool) {
	if c.DelayMinMS == 0 && c.DelayMaxMS == 0 {
		return 0, 0, false
	}
	lo = time.Duration(c.DelayMinMS) * time.Millisecond
	hi = time.Duration(c.DelayMaxMS) * time.Millisecond
	if hi < lo {
		hi = lo
	}
	return lo, hi, true
}

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// Load reads name and then <name>.local.<ext>, with the local file's values
// overriding the shared one. Missing files are not an error; an empty Config
// is returned when neither exists.
func Load(name string) (Config, error) {
	var out Config

	data, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > 0 {
		if err := json5.Unmarshal(data, &out); err != nil {
			return out, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		slog.Debug("loaded config", "path", name)
	}

	prefix, ext := splitExt(filepath.Base(name))
	localPath := filepath.Join(filepath.Dir(name), fmt.Sprintf("%s.local.%s", prefix, ext))
	data, err = os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > 0 {
		var override Config
		if err := json5.Unmarshal(data, &override); err != nil {
			return out, fmt.Errorf("failed to parse %s: %w", localPath, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, fmt.Errorf("failed to merge %s: %w", localPath, err)
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}

	return out, nil
}
