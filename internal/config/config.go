package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Article ArticleConfig `yaml:"article" json:"article"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// ServerConfig configures the summarization service connection
type ServerConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url"`     // service root, /summarize and /demo are appended
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`       // per request timeout
	UserAgent string        `yaml:"user_agent" json:"user_agent"` // sent with every request
}

// ArticleConfig configures how articles are loaded from files and URLs
type ArticleConfig struct {
	MaxBytes     int64         `yaml:"max_bytes" json:"max_bytes"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" json:"fetch_timeout"`
}

// OutputConfig configures non-interactive output
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// UIConfig configures the terminal UI
type UIConfig struct {
	Theme     string `yaml:"theme" json:"theme"`           // default|high-contrast|minimal
	WrapWidth int    `yaml:"wrap_width" json:"wrap_width"` // 0 wraps to the window
}

// LogConfig configures where diagnostics go while the TUI owns the terminal
type LogConfig struct {
	File string `yaml:"file" json:"file"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			BaseURL:   "http://localhost:5000",
			Timeout:   120 * time.Second,
			UserAgent: "synopsis",
		},
		Article: ArticleConfig{
			MaxBytes:     2 << 20, // 2MB
			FetchTimeout: 30 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
		},
		UI: UIConfig{
			Theme:     "default",
			WrapWidth: 0,
		},
		Log: LogConfig{
			File: "~/.cache/synopsis/synopsis.log",
		},
	}
}

// LogFilePath returns the log file path with ~ expanded
func (c *Config) LogFilePath() string {
	return expandPath(c.Log.File)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateArticleConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	return nil
}

// validateServerConfig validates service connection settings
func (c *Config) validateServerConfig() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server base_url is required")
	}
	parsed, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid server base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid server base_url: %s (scheme must be http or https)", c.Server.BaseURL)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive")
	}
	return nil
}

// validateArticleConfig validates article loading limits
func (c *Config) validateArticleConfig() error {
	if c.Article.MaxBytes < 1 {
		return fmt.Errorf("max_bytes must be greater than 0")
	}
	if c.Article.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// validateUIConfig validates terminal UI settings
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	if c.UI.WrapWidth < 0 {
		return fmt.Errorf("wrap_width must be non-negative")
	}
	return nil
}
