package config

import "sync"

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Initialize sets the process-wide configuration. A nil config resets it to
// the defaults.
func Initialize(cfg *Config) {
	if cfg == nil {
		cfg = Default()
	}
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}

// Get returns the process-wide configuration, initializing it on first use
func Get() *Config {
	globalMu.RLock()
	cfg := globalConfig
	globalMu.RUnlock()
	if cfg == nil {
		Initialize(nil)
		return Get()
	}
	return cfg
}
