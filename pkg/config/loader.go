package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/kiln/pkg/constants"
	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// ConfigPathEnv points at a config file used instead of the XDG location
const ConfigPathEnv = "KILN_CONFIG"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// DefaultsContent returns the embedded defaults file
func DefaultsContent() string {
	return string(defaultConfig)
}

// UserConfigPath returns the path of the user configuration file
func UserConfigPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "kiln", "config.toml")
}

type loadOptions struct {
	userFile  string
	env       bool
	overrides map[string]interface{}
}

// Load builds the effective configuration. Overrides are keyed by dotted
// paths ("hooks.timeout") and typically come from command line flags.
func Load(overrides map[string]interface{}) (*Config, error) {
	return load(loadOptions{
		userFile:  UserConfigPath(),
		env:       true,
		overrides: overrides,
	})
}

// LoadFile is Load with an explicit user file and without the environment
// layer.
func LoadFile(path string, overrides map[string]interface{}) (*Config, error) {
	return load(loadOptions{userFile: path, overrides: overrides})
}

func load(opts loadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load embedded defaults")
	}

	// 2. User file
	if opts.userFile != "" {
		if _, err := os.Stat(opts.userFile); err == nil {
			if err := k.Load(file.Provider(opts.userFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", opts.userFile).
					WithDetail("path", opts.userFile)
			}
			logger.Debug().Str("path", opts.userFile).Msg("Loaded user config")
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config file %s", opts.userFile)
		}
	}

	// 3. Environment
	if opts.env {
		if err := k.Load(env.Provider(constants.EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
		}
	}

	// 4. Flag overrides
	if len(opts.overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps KILN_HOOKS__TIMEOUT to hooks.timeout. A double underscore
// separates sections; single underscores stay part of the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, constants.EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
