package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/kiln/pkg/errors"
)

// fileView mirrors Config with the on-disk key names and a string timeout
type fileView struct {
	TemplateSuffix string `toml:"template_suffix"`
	Workers        int    `toml:"workers"`
	MaxAttempts    int    `toml:"max_attempts"`
	Hooks          struct {
		Timeout string `toml:"timeout"`
	} `toml:"hooks"`
	Source struct {
		CacheDir   string `toml:"cache_dir"`
		GitCommand string `toml:"git_command"`
	} `toml:"source"`
	Output struct {
		Color string `toml:"color"`
	} `toml:"output"`
}

// Marshal renders the configuration as TOML in the same shape the user file
// is read in.
func Marshal(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrInvalidInput, "config is nil")
	}
	var v fileView
	v.TemplateSuffix = cfg.TemplateSuffix
	v.Workers = cfg.Workers
	v.MaxAttempts = cfg.MaxAttempts
	v.Hooks.Timeout = cfg.Hooks.Timeout.String()
	v.Source.CacheDir = cfg.Source.CacheDir
	v.Source.GitCommand = cfg.Source.GitCommand
	v.Output.Color = cfg.Output.Color

	data, err := toml.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return data, nil
}
