package config

import "sync"

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Initialize loads the configuration at path, applying environment
// overrides, and installs it as the process configuration. An empty path
// loads the defaults.
//
// Once a configuration is installed later calls are no-ops. A failed load
// installs nothing, so a corrected path can be retried.
func Initialize(path string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalConfig != nil {
		return nil
	}

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return err
	}
	globalConfig = cfg
	return nil
}

// GetConfig returns the installed configuration, or nil before a
// successful Initialize.
func GetConfig() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// SetConfig replaces the installed configuration. Tests use it to inject a
// configuration without touching the filesystem; nil uninstalls it.
func SetConfig(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}
