// Package config manages application configuration.
package config

import (
	"fmt"
	"time"

	"github.com/roboco-io/ogpreview/internal/ogimage"
	"github.com/roboco-io/ogpreview/internal/preset"
)

// Config represents the application configuration.
type Config struct {
	Service  string         `yaml:"service"`
	Mode     string         `yaml:"mode"`
	Triggers []string       `yaml:"triggers,omitempty"` // overrides the mode's trigger set
	Defaults DefaultsConfig `yaml:"defaults"`
	Preload  PreloadConfig  `yaml:"preload"`
	Server   ServerConfig   `yaml:"server"`
}

// DefaultsConfig holds the initial image parameters.
type DefaultsConfig struct {
	Ratio     string `yaml:"ratio"`
	Size      int    `yaml:"size"`
	BgColor   string `yaml:"bg"`
	TextColor string `yaml:"color"`
	Text      string `yaml:"text,omitempty"`
	Font      string `yaml:"font"`
}

// PreloadConfig controls the image preload step.
type PreloadConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"` // nil follows the mode
	Timeout string `yaml:"timeout,omitempty"` // e.g. "10s"; empty waits indefinitely
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Page string `yaml:"page,omitempty"` // HTML template; built-in page when empty
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	d := ogimage.DefaultParams()
	return &Config{
		Service: ogimage.DefaultService,
		Mode:    preset.Classic,
		Defaults: DefaultsConfig{
			Ratio:     d.Ratio,
			Size:      d.Size,
			BgColor:   d.BgColor,
			TextColor: d.TextColor,
			Text:      d.Text,
			Font:      d.Font,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// Params returns the defaults as image parameters.
func (c *Config) Params() ogimage.Params {
	return ogimage.Params{
		Ratio:     c.Defaults.Ratio,
		Size:      c.Defaults.Size,
		BgColor:   c.Defaults.BgColor,
		TextColor: c.Defaults.TextColor,
		Text:      c.Defaults.Text,
		Font:      c.Defaults.Font,
	}
}

// ResolveMode returns the configured mode with trigger and preload overrides applied.
func (c *Config) ResolveMode() (ogimage.Mode, error) {
	p, err := preset.Get(c.Mode)
	if err != nil {
		return ogimage.Mode{}, err
	}
	mode := p.Mode

	if len(c.Triggers) > 0 {
		triggers, err := ogimage.ParseFieldSet(c.Triggers)
		if err != nil {
			return ogimage.Mode{}, fmt.Errorf("invalid triggers: %w", err)
		}
		mode.Triggers = triggers
	}
	if c.Preload.Enabled != nil {
		mode.Preload = *c.Preload.Enabled
	}

	if err := mode.Validate(); err != nil {
		return ogimage.Mode{}, err
	}
	return mode, nil
}

// PreloadTimeout parses the preload timeout. Empty means no timeout.
func (c *Config) PreloadTimeout() (time.Duration, error) {
	if c.Preload.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Preload.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid preload timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("preload timeout must not be negative: %s", c.Preload.Timeout)
	}
	return d, nil
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
