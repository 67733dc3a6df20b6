package cfg

import (
	"linematch/internal"
	"linematch/internal/app/apps"
)

// ConfigPathCfg is configuration for the server config file location.
type ConfigPathCfg struct {
	path string
}

// NewConfigPathCfg creates a new ConfigPathCfg from the given config.
func NewConfigPathCfg(path string) *ConfigPathCfg {
	return &ConfigPathCfg{
		path: path,
	}
}

// ConfigPathFromEnv creates a new ConfigPathCfg from the current environment.
func ConfigPathFromEnv() *ConfigPathCfg {
	return &ConfigPathCfg{
		path: internal.ConfigPath,
	}
}

// ApplyServerApp applies the ConfigPathCfg to a ServerApp.
func (cfg ConfigPathCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.ConfigPath = cfg.path
	return nil
}
