// Package config loads the surf server configuration.
//
// Configuration is resolved in three layers: built-in defaults, an optional
// YAML config file (SURF_CONFIG or ~/.surf/config.yaml), and environment
// variable overrides. Environment variables win so the server can be
// configured entirely from an MCP client's launch stanza.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported browser engine kinds.
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

// Defaults for the browser session.
const (
	DefaultTimeoutMs      = 30000.0
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config holds the full server configuration.
type Config struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool `yaml:"headless"`

	// BrowserType selects the engine: chromium, firefox, or webkit
	BrowserType string `yaml:"browser_type"`

	// TimeoutMs is the default timeout for delegated operations, in milliseconds
	TimeoutMs float64 `yaml:"timeout_ms"`

	// ViewportWidth and ViewportHeight set the context viewport
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`

	// UserAgent is applied at context creation
	UserAgent string `yaml:"user_agent"`

	// IgnoreHTTPSErrors tolerates TLS certificate errors
	IgnoreHTTPSErrors bool `yaml:"ignore_https_errors"`

	// AllowedURLs and BlockedURLs are glob patterns applied to navigation
	// targets. An empty allowed list permits everything not blocked.
	AllowedURLs []string `yaml:"allowed_urls"`
	BlockedURLs []string `yaml:"blocked_urls"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Headless:          true,
		BrowserType:       EngineChromium,
		TimeoutMs:         DefaultTimeoutMs,
		ViewportWidth:     DefaultViewportWidth,
		ViewportHeight:    DefaultViewportHeight,
		UserAgent:         DefaultUserAgent,
		IgnoreHTTPSErrors: true,
	}
}

// Load resolves the configuration from defaults, the optional config file,
// and environment overrides, then validates the result.
func Load() (Config, error) {
	cfg := Default()

	path := configFilePath()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// configFilePath returns the config file to read, or "" when none exists.
// SURF_CONFIG takes precedence; otherwise ~/.surf/config.yaml is used when
// present.
func configFilePath() string {
	if path := os.Getenv("SURF_CONFIG"); path != "" {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(homeDir, ".surf", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// applyFile overlays values from a YAML config file.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays values from the process environment.
func (c *Config) applyEnv() error {
	if v := os.Getenv("BROWSER_HEADLESS"); v != "" {
		c.Headless = strings.ToLower(v) == "true"
	}

	if v := os.Getenv("BROWSER_TYPE"); v != "" {
		c.BrowserType = strings.ToLower(v)
	}

	if v := os.Getenv("BROWSER_TIMEOUT"); v != "" {
		ms, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid BROWSER_TIMEOUT %q: %w", v, err)
		}
		c.TimeoutMs = ms
	}

	if v := os.Getenv("BROWSER_VIEWPORT"); v != "" {
		width, height, err := ParseViewport(v)
		if err != nil {
			return fmt.Errorf("invalid BROWSER_VIEWPORT %q: %w", v, err)
		}
		c.ViewportWidth = width
		c.ViewportHeight = height
	}

	if v := os.Getenv("BROWSER_USER_AGENT"); v != "" {
		c.UserAgent = v
	}

	return nil
}

// Validate checks the configuration for values the browser layer cannot use.
func (c *Config) Validate() error {
	switch c.BrowserType {
	case EngineChromium, EngineFirefox, EngineWebKit:
	default:
		return fmt.Errorf("unsupported browser type %q (must be %s, %s, or %s)",
			c.BrowserType, EngineChromium, EngineFirefox, EngineWebKit)
	}

	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.TimeoutMs)
	}

	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}

	return nil
}

// ParseViewport parses a viewport size string such as "1280x720" or
// "1280,720" into width and height.
func ParseViewport(s string) (int, int, error) {
	if s == "" {
		return 0, 0, fmt.Errorf("viewport string cannot be empty")
	}

	for _, separator := range []string{"x", "X", ",", " "} {
		parts := strings.Split(s, separator)
		if len(parts) != 2 {
			continue
		}

		width, werr := strconv.Atoi(strings.TrimSpace(parts[0]))
		height, herr := strconv.Atoi(strings.TrimSpace(parts[1]))
		if werr != nil || herr != nil {
			continue
		}
		if width > 0 && height > 0 {
			return width, height, nil
		}
	}

	return 0, 0, fmt.Errorf("invalid viewport format: %s", s)
}
