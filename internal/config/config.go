// Package config loads editor and server settings from a JSON or TOML file and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jonathan/resume-editor/internal/drag"
	"github.com/jonathan/resume-editor/internal/sections"
)

// Config is the full application configuration. Every field is optional in a file;
// missing values come from Default.
type Config struct {
	Server    ServerConfig    `json:"server" toml:"server"`
	Editor    EditorConfig    `json:"editor" toml:"editor"`
	Scan      ScanConfig      `json:"scan" toml:"scan"`
	Log       LogConfig       `json:"log" toml:"log"`
	RateLimit RateLimitConfig `json:"rate_limit" toml:"rate_limit"`
	APIKey    string          `json:"api_key,omitempty" toml:"api_key,omitempty"` // Gemini API key
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int      `json:"port,omitempty" toml:"port,omitempty"`
	SessionTTL    Duration `json:"session_ttl,omitempty" toml:"session_ttl,omitempty"` // Idle time before an editing session expires
	AllowedOrigin string   `json:"allowed_origin,omitempty" toml:"allowed_origin,omitempty"`
}

// EditorConfig holds section editor and drag settings.
type EditorConfig struct {
	ScrollDelay     Duration `json:"scroll_delay,omitempty" toml:"scroll_delay,omitempty"`
	PointerDistance float64  `json:"pointer_distance,omitempty" toml:"pointer_distance,omitempty"` // Pixels before a pointer drag starts
	TouchDelay      Duration `json:"touch_delay,omitempty" toml:"touch_delay,omitempty"`
	TouchTolerance  float64  `json:"touch_tolerance,omitempty" toml:"touch_tolerance,omitempty"`
}

// ScanConfig holds keyword scan settings.
type ScanConfig struct {
	MaxKeywords  int `json:"max_keywords,omitempty" toml:"max_keywords,omitempty"` // 0 means no cap
	BatchWorkers int `json:"batch_workers,omitempty" toml:"batch_workers,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `json:"level,omitempty" toml:"level,omitempty"`
	Development bool   `json:"development,omitempty" toml:"development,omitempty"`
}

// RateLimitConfig limits the LLM-backed endpoints per client.
type RateLimitConfig struct {
	Disabled  bool     `json:"disabled,omitempty" toml:"disabled,omitempty"`
	Limit     int      `json:"limit,omitempty" toml:"limit,omitempty"` // Requests per window
	Window    Duration `json:"window,omitempty" toml:"window,omitempty"`
	Burst     int      `json:"burst,omitempty" toml:"burst,omitempty"`
	AllowList []string `json:"allow_list,omitempty" toml:"allow_list,omitempty"` // Client IPs that are never limited
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:          8080,
			SessionTTL:    Duration(30 * time.Minute),
			AllowedOrigin: "*",
		},
		Editor: EditorConfig{
			ScrollDelay:     Duration(sections.DefaultScrollDelay),
			PointerDistance: drag.DefaultPointerSensor.Distance,
			TouchDelay:      Duration(drag.DefaultTouchSensor.Delay),
			TouchTolerance:  drag.DefaultTouchSensor.Tolerance,
		},
		Scan: ScanConfig{
			BatchWorkers: 4,
		},
		Log: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			Limit:  30,
			Window: Duration(time.Hour),
			Burst:  5,
		},
	}
}

// LoadConfig loads configuration from a file. Files ending in .toml are read as TOML,
// everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
		return &cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Resolve builds the effective configuration: defaults, then the file at path (if any),
// then environment overrides. The result is validated.
func Resolve(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *loaded
	}

	merged := cfg.MergeWithDefaults(Default())
	merged.ApplyEnv()
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() {
	c.APIKey = getEnvString("GEMINI_API_KEY", c.APIKey)
	c.Server.Port = getEnvInt("PORT", c.Server.Port)
	c.Server.SessionTTL = Duration(getEnvDuration("SESSION_TTL", c.Server.SessionTTL.Std()))
	c.Log.Level = strings.ToLower(getEnvString("LOG_LEVEL", c.Log.Level))
	if v, ok := os.LookupEnv("RATE_LIMIT_ENABLED"); ok {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.RateLimit.Disabled = !enabled
		}
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 0 and 65535")
	}
	if c.Server.SessionTTL < 0 {
		return fmt.Errorf("config error: 'server.session_ttl' must be non-negative")
	}
	if c.Editor.ScrollDelay < 0 || c.Editor.TouchDelay < 0 {
		return fmt.Errorf("config error: editor delays must be non-negative")
	}
	if c.Editor.PointerDistance < 0 || c.Editor.TouchTolerance < 0 {
		return fmt.Errorf("config error: editor distances must be non-negative")
	}
	if c.Scan.MaxKeywords < 0 {
		return fmt.Errorf("config error: 'scan.max_keywords' must be non-negative")
	}
	if c.Scan.BatchWorkers < 0 {
		return fmt.Errorf("config error: 'scan.batch_workers' must be non-negative")
	}
	if c.Log.Level != "" && !logLevels[c.Log.Level] {
		return fmt.Errorf("config error: unknown log level %q", c.Log.Level)
	}
	if c.RateLimit.Limit < 0 || c.RateLimit.Burst < 0 || c.RateLimit.Window < 0 {
		return fmt.Errorf("config error: rate limit values must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a copy with zero-valued fields filled from defaults.
// Bools are not merged because unset and false cannot be told apart.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.SessionTTL == 0 {
		result.Server.SessionTTL = defaults.Server.SessionTTL
	}
	if result.Server.AllowedOrigin == "" {
		result.Server.AllowedOrigin = defaults.Server.AllowedOrigin
	}

	if result.Editor.ScrollDelay == 0 {
		result.Editor.ScrollDelay = defaults.Editor.ScrollDelay
	}
	if result.Editor.PointerDistance == 0 {
		result.Editor.PointerDistance = defaults.Editor.PointerDistance
	}
	if result.Editor.TouchDelay == 0 {
		result.Editor.TouchDelay = defaults.Editor.TouchDelay
	}
	if result.Editor.TouchTolerance == 0 {
		result.Editor.TouchTolerance = defaults.Editor.TouchTolerance
	}

	if result.Scan.MaxKeywords == 0 {
		result.Scan.MaxKeywords = defaults.Scan.MaxKeywords
	}
	if result.Scan.BatchWorkers == 0 {
		result.Scan.BatchWorkers = defaults.Scan.BatchWorkers
	}

	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}

	if result.RateLimit.Limit == 0 {
		result.RateLimit.Limit = defaults.RateLimit.Limit
	}
	if result.RateLimit.Window == 0 {
		result.RateLimit.Window = defaults.RateLimit.Window
	}
	if result.RateLimit.Burst == 0 {
		result.RateLimit.Burst = defaults.RateLimit.Burst
	}
	if len(result.RateLimit.AllowList) == 0 {
		result.RateLimit.AllowList = defaults.RateLimit.AllowList
	}

	return result
}

func getEnvString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
