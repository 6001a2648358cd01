package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Headless)
	assert.Equal(t, EngineChromium, cfg.BrowserType)
	assert.Equal(t, DefaultTimeoutMs, cfg.TimeoutMs)
	assert.Equal(t, DefaultViewportWidth, cfg.ViewportWidth)
	assert.Equal(t, DefaultViewportHeight, cfg.ViewportHeight)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.True(t, cfg.IgnoreHTTPSErrors)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("BROWSER_TYPE", "firefox")
	t.Setenv("BROWSER_TIMEOUT", "15000")
	t.Setenv("BROWSER_VIEWPORT", "1920x1080")
	t.Setenv("BROWSER_USER_AGENT", "custom-agent/1.0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Headless)
	assert.Equal(t, EngineFirefox, cfg.BrowserType)
	assert.Equal(t, 15000.0, cfg.TimeoutMs)
	assert.Equal(t, 1920, cfg.ViewportWidth)
	assert.Equal(t, 1080, cfg.ViewportHeight)
	assert.Equal(t, "custom-agent/1.0", cfg.UserAgent)
}

func TestLoadInvalidEnv(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad timeout", "BROWSER_TIMEOUT", "soon"},
		{"bad viewport", "BROWSER_VIEWPORT", "wide"},
		{"bad browser type", "BROWSER_TYPE", "netscape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
headless: false
browser_type: webkit
timeout_ms: 5000
viewport_width: 800
viewport_height: 600
blocked_urls:
  - "*://internal.example.com/*"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("SURF_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Headless)
	assert.Equal(t, EngineWebKit, cfg.BrowserType)
	assert.Equal(t, 5000.0, cfg.TimeoutMs)
	assert.Equal(t, 800, cfg.ViewportWidth)
	assert.Equal(t, 600, cfg.ViewportHeight)
	assert.Equal(t, []string{"*://internal.example.com/*"}, cfg.BlockedURLs)
}

func TestEnvBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browser_type: webkit\n"), 0600))
	t.Setenv("SURF_CONFIG", path)
	t.Setenv("BROWSER_TYPE", "chromium")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EngineChromium, cfg.BrowserType)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"unknown engine", func(c *Config) { c.BrowserType = "opera" }, true},
		{"zero timeout", func(c *Config) { c.TimeoutMs = 0 }, true},
		{"negative viewport", func(c *Config) { c.ViewportWidth = -1 }, true},
		{"zero viewport height", func(c *Config) { c.ViewportHeight = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseViewport(t *testing.T) {
	tests := []struct {
		input      string
		wantWidth  int
		wantHeight int
		wantErr    bool
	}{
		{"1280x720", 1280, 720, false},
		{"1280X720", 1280, 720, false},
		{"1280,720", 1280, 720, false},
		{"1280 720", 1280, 720, false},
		{" 1920 x 1080 ", 1920, 1080, false},
		{"", 0, 0, true},
		{"1280", 0, 0, true},
		{"axb", 0, 0, true},
		{"0x720", 0, 0, true},
		{"-1x720", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			width, height, err := ParseViewport(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, width)
			assert.Equal(t, tt.wantHeight, height)
		})
	}
}
