package cfg

import (
	"linematch/internal"
	"linematch/internal/app/apps"
)

// TimeoutCfg is configuration for the client query timeout in milliseconds.
type TimeoutCfg struct {
	timeoutMS uint32
}

// NewTimeoutCfg creates a new TimeoutCfg from the given config.
func NewTimeoutCfg(timeoutMS uint32) *TimeoutCfg {
	return &TimeoutCfg{
		timeoutMS: timeoutMS,
	}
}

// TimeoutFromEnv creates a new TimeoutCfg from the current environment.
func TimeoutFromEnv() *TimeoutCfg {
	return &TimeoutCfg{
		timeoutMS: internal.ClientTimeoutMS,
	}
}

// ApplyClientApp applies the TimeoutCfg to a ClientApp.
func (cfg TimeoutCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.TimeoutMS = cfg.timeoutMS
	return nil
}
