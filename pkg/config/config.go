package config

import (
	"runtime"
	"time"

	"github.com/arthur-debert/kiln/pkg/errors"
)

// Color modes accepted by output.color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the effective kiln configuration
type Config struct {
	TemplateSuffix string `koanf:"template_suffix"`
	Workers        int    `koanf:"workers"`
	MaxAttempts    int    `koanf:"max_attempts"`
	Hooks          Hooks  `koanf:"hooks"`
	Source         Source `koanf:"source"`
	Output         Output `koanf:"output"`
}

// Hooks controls pre and post generation hook execution
type Hooks struct {
	Timeout time.Duration `koanf:"timeout"`
}

// Source controls how remote templates are fetched
type Source struct {
	CacheDir   string `koanf:"cache_dir"`
	GitCommand string `koanf:"git_command"`
}

// Output controls terminal rendering
type Output struct {
	Color string `koanf:"color"`
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := load(loadOptions{})
	if err != nil {
		// the embedded defaults are covered by tests
		panic(err)
	}
	return cfg
}

// EffectiveWorkers resolves a zero worker count to the number of CPUs
func (c *Config) EffectiveWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Validate checks value ranges that the decoder cannot express
func (c *Config) Validate() error {
	if c.TemplateSuffix == "" {
		return errors.New(errors.ErrConfigInvalid, "template_suffix must not be empty")
	}
	if c.Workers < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxAttempts < 1 {
		return errors.Newf(errors.ErrConfigInvalid, "max_attempts must be >= 1, got %d", c.MaxAttempts)
	}
	if c.Hooks.Timeout < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "hooks.timeout must not be negative, got %s", c.Hooks.Timeout)
	}
	if c.Source.GitCommand == "" {
		return errors.New(errors.ErrConfigInvalid, "source.git_command must not be empty")
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigInvalid, "output.color must be auto, always or never, got %q", c.Output.Color)
	}
	return nil
}
