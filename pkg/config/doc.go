// Package config loads kiln's runtime configuration.
//
// Configuration is layered with koanf: the embedded defaults.toml, the user
// file under $XDG_CONFIG_HOME/kiln/config.toml, KILN_* environment variables
// and finally command line overrides. Later layers win.
package config
