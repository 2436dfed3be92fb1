// Package config provides configuration management for the poketimes binaries.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSourceURL is the posts endpoint used when none is configured.
const DefaultSourceURL = "https://jsonplaceholder.typicode.com/posts"

// Environment variables that override file settings.
const (
	EnvConfig      = "POKETIMES_CONFIG"
	EnvSourceURL   = "POKETIMES_SOURCE_URL"
	EnvAddr        = "POKETIMES_ADDR"
	EnvLogLevel    = "POKETIMES_LOG_LEVEL"
	EnvCorsOrigins = "POKETIMES_CORS_ORIGINS"
)

// Configuration validation errors.
var (
	ErrMissingSourceURL  = errors.New("source.url is required")
	ErrInvalidSourceURL  = errors.New("source.url must be an absolute http(s) URL")
	ErrInvalidTimeout    = errors.New("source.timeout_sec must be non-negative")
	ErrInvalidBodyLimit  = errors.New("source.max_body_kb must be at least 1")
	ErrMissingAddr       = errors.New("server.addr is required")
	ErrInvalidServerTime = errors.New("server timeouts must be non-negative")
	ErrInvalidLogLevel   = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidTextWidth  = errors.New("render.text_width must be at least 20")
)

// Config represents the complete application configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Render  RenderConfig  `yaml:"render"`
}

// SourceConfig describes the remote posts endpoint.
type SourceConfig struct {
	URL        string `yaml:"url"`
	UserAgent  string `yaml:"user_agent"`
	TimeoutSec int    `yaml:"timeout_sec"`
	MaxBodyKb  int    `yaml:"max_body_kb"`
}

// ServerConfig defines HTTP server behavior.
type ServerConfig struct {
	Addr               string   `yaml:"addr"`
	CorsAllowedOrigins []string `yaml:"cors_allowed_origins"`
	ReadTimeoutSec     int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int      `yaml:"write_timeout_sec"`
	IdleTimeoutSec     int      `yaml:"idle_timeout_sec"`
	ShutdownTimeoutSec int      `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// RenderConfig defines page and terminal rendering options.
type RenderConfig struct {
	Title     string `yaml:"title"`
	TextWidth int    `yaml:"text_width"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:        DefaultSourceURL,
			UserAgent:  "poketimes/1.0",
			TimeoutSec: 0,
			MaxBodyKb:  1024,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			CorsAllowedOrigins: []string{"*"},
			ReadTimeoutSec:     15,
			WriteTimeoutSec:    15,
			IdleTimeoutSec:     60,
			ShutdownTimeoutSec: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Render: RenderConfig{
			Title:     "Poke' Times",
			TextWidth: 72,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	cfg, err := readConfig(filepath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv copies entries from .env files (./.env when none are named)
// into the process environment. Variables already set win, and a missing
// file is not an error.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	return nil
}

// Load resolves the configuration for a binary: an optional .env file, the
// YAML file at path (defaults when empty), POKETIMES_* overrides and then
// the given overrides, typically command-line flags. The result is
// validated once, after every layer has been applied.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := Default()

	if path != "" {
		loaded, err := readConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	cfg.ApplyEnv(os.LookupEnv)

	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func readConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookupTrimmed(lookup, EnvSourceURL); ok {
		c.Source.URL = v
	}

	if v, ok := lookupTrimmed(lookup, EnvAddr); ok {
		c.Server.Addr = v
	}

	if v, ok := lookupTrimmed(lookup, EnvLogLevel); ok {
		c.Logging.Level = strings.ToLower(v)
	}

	if v, ok := lookupTrimmed(lookup, EnvCorsOrigins); ok {
		c.Server.CorsAllowedOrigins = splitCSV(v)
	}
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return ErrMissingSourceURL
	}

	u, err := url.Parse(c.Source.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidSourceURL, c.Source.URL)
	}

	if c.Source.TimeoutSec < 0 {
		return ErrInvalidTimeout
	}

	if c.Source.MaxBodyKb < 1 {
		return ErrInvalidBodyLimit
	}

	if c.Server.Addr == "" {
		return ErrMissingAddr
	}

	if c.Server.ReadTimeoutSec < 0 || c.Server.WriteTimeoutSec < 0 ||
		c.Server.IdleTimeoutSec < 0 || c.Server.ShutdownTimeoutSec < 0 {
		return ErrInvalidServerTime
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Render.TextWidth < 20 {
		return ErrInvalidTextWidth
	}

	return nil
}

// GetTimeout returns the outbound request timeout; zero means none.
func (s *SourceConfig) GetTimeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// GetBodyLimit returns the maximum accepted response body size in bytes.
func (s *SourceConfig) GetBodyLimit() int64 {
	return int64(s.MaxBodyKb) * 1024
}

// ReadTimeout returns the server read timeout.
func (s *ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns the server write timeout.
func (s *ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSec) * time.Second
}

// IdleTimeout returns the server idle timeout.
func (s *ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSec) * time.Second
}

// ShutdownTimeout returns how long graceful shutdown may take.
func (s *ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Source: %s, Addr: %s, LogLevel: %s}",
		c.Source.URL,
		c.Server.Addr,
		c.Logging.Level,
	)
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)

	return v, v != ""
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))

	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}

	if len(out) == 0 {
		return []string{"*"}
	}

	return out
}

