package cfg

import (
	"linematch/internal"
	"linematch/internal/app/apps"
)

// MetricsPortCfg is configuration for the Prometheus metrics listener.
// A zero port disables the listener.
type MetricsPortCfg struct {
	port uint16
}

// NewMetricsPortCfg creates a new MetricsPortCfg from the given config.
func NewMetricsPortCfg(port uint16) *MetricsPortCfg {
	return &MetricsPortCfg{
		port: port,
	}
}

// MetricsPortFromEnv creates a new MetricsPortCfg from the current environment.
func MetricsPortFromEnv() *MetricsPortCfg {
	return &MetricsPortCfg{
		port: internal.MetricsPort,
	}
}

// ApplyServerApp applies the MetricsPortCfg to a ServerApp.
func (cfg MetricsPortCfg) ApplyServerApp(app *apps.ServerApp) error {
	app.MetricsPort = cfg.port
	return nil
}
