package cfg

import (
	"linematch/internal"
	"linematch/internal/app/apps"
)

// ClientTLSCfg is configuration for client-side TLS.
type ClientTLSCfg struct {
	useTLS bool
	caCert string
}

// NewClientTLSCfg creates a new ClientTLSCfg from the given config.
func NewClientTLSCfg(useTLS bool, caCert string) *ClientTLSCfg {
	return &ClientTLSCfg{
		useTLS: useTLS,
		caCert: caCert,
	}
}

// ClientTLSFromEnv creates a new ClientTLSCfg from the current environment.
func ClientTLSFromEnv() *ClientTLSCfg {
	return &ClientTLSCfg{
		useTLS: internal.ClientUseTLS,
		caCert: internal.ClientCACert,
	}
}

// ApplyClientApp applies the ClientTLSCfg to a ClientApp.
func (cfg ClientTLSCfg) ApplyClientApp(app *apps.ClientApp) error {
	app.UseTLS = cfg.useTLS
	app.CACert = cfg.caCert
	return nil
}
