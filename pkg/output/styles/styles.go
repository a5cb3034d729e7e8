// Package styles defines the visual styling for kiln's terminal output.
//
// Styles use semantic names and adaptive colors that follow the terminal's
// light or dark background. Names are the action labels of executed
// operations (creating, overwriting, skipping, ignoring, failed) plus a few
// presentation roles such as path, muted and header.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Width      int    `yaml:"width,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps semantic names to lipgloss styles bound to one renderer
type Registry map[string]lipgloss.Style

// Parse decodes a styles configuration
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}
	for name, def := range cfg.Styles {
		for _, ref := range []string{def.Foreground, def.Background} {
			if ref == "" {
				continue
			}
			if _, ok := cfg.Colors[ref]; !ok {
				return nil, fmt.Errorf("style %q references unknown color %q", name, ref)
			}
		}
	}
	return &cfg, nil
}

// Default returns the embedded styles configuration
func Default() *Config {
	cfg, err := Parse(defaultStyles)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Build creates the styles for a renderer. The renderer's color profile
// decides whether any escape codes are emitted.
func (c *Config) Build(r *lipgloss.Renderer) Registry {
	registry := make(Registry, len(c.Styles))
	for name, def := range c.Styles {
		registry[name] = c.buildStyle(r, def)
	}
	return registry
}

func (c *Config) buildStyle(r *lipgloss.Renderer, def StyleDef) lipgloss.Style {
	style := r.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}

	if color, ok := c.Colors[def.Foreground]; ok {
		style = style.Foreground(lipgloss.AdaptiveColor{Light: color.Light, Dark: color.Dark})
	}
	if color, ok := c.Colors[def.Background]; ok {
		style = style.Background(lipgloss.AdaptiveColor{Light: color.Light, Dark: color.Dark})
	}

	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	return style
}

// Get returns the named style, or a plain one when the name is unknown
func (r Registry) Get(name string) lipgloss.Style {
	if style, ok := r[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
