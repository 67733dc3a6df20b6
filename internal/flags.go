package internal

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Flag describes a command line flag with an environment variable fallback.
// Exactly one of the typed value targets must be set. An environment value,
// when present, becomes the flag default so an explicit flag still wins.
type Flag struct {
	Name   string
	EnvVar string
	Usage  string

	String *string
	Uint16 *uint16
	Uint32 *uint32
	Bool   *bool

	DefaultString string
	DefaultUint16 uint16
	DefaultUint32 uint32
	DefaultBool   bool
}

// Shared command flags.
var (
	EnvFlag = Flag{
		Name:          "env",
		EnvVar:        "ENV",
		Usage:         "deployment environment (development, test, production)",
		String:        &Env,
		DefaultString: "development",
	}
	LogLevelFlag = Flag{
		Name:          "log-level",
		EnvVar:        "LOG_LEVEL",
		Usage:         "log level (trace, debug, info, warn, error)",
		String:        &LogLevel,
		DefaultString: "debug",
	}
	HostFlag = Flag{
		Name:   "host",
		EnvVar: "HOST",
		Usage:  "server host (overrides the config file for the server command)",
		String: &Host,
	}
	PortFlag = Flag{
		Name:   "port",
		EnvVar: "PORT",
		Usage:  "server port (overrides the config file for the server command)",
		Uint16: &Port,
	}
)

// Server command flags.
var (
	ConfigPathFlag = Flag{
		Name:          "config",
		EnvVar:        "CONFIG_PATH",
		Usage:         "path to the YAML server configuration file",
		String:        &ConfigPath,
		DefaultString: "config.yaml",
	}
	MetricsPortFlag = Flag{
		Name:   "metrics-port",
		EnvVar: "METRICS_PORT",
		Usage:  "port for the Prometheus metrics endpoint (0 disables it)",
		Uint16: &MetricsPort,
	}
)

// Client command flags.
var (
	ClientTLSFlag = Flag{
		Name:   "tls",
		EnvVar: "TLS",
		Usage:  "connect over TLS",
		Bool:   &ClientUseTLS,
	}
	ClientCACertFlag = Flag{
		Name:   "cacert",
		EnvVar: "TLS_CACERT",
		Usage:  "trusted CA certificate file; when empty the server certificate is not verified",
		String: &ClientCACert,
	}
	ClientTimeoutMSFlag = Flag{
		Name:          "timeout-ms",
		EnvVar:        "TIMEOUT_MS",
		Usage:         "client dial and response timeout in milliseconds",
		Uint32:        &ClientTimeoutMS,
		DefaultUint32: 10000,
	}
)

// RegisterCommandFlags registers the given flags on the command, applying any
// environment variable values as flag defaults first.
func RegisterCommandFlags(cmd *cobra.Command, flags []*Flag) error {
	for _, f := range flags {
		if f.EnvVar != "" {
			if raw, ok := os.LookupEnv(f.EnvVar); ok {
				if err := f.setDefault(raw); err != nil {
					return errors.Wrapf(err, "parse %s failed", f.EnvVar)
				}
			}
		}
		switch {
		case f.String != nil:
			cmd.PersistentFlags().StringVar(f.String, f.Name, f.DefaultString, f.Usage)
		case f.Uint16 != nil:
			cmd.PersistentFlags().Uint16Var(f.Uint16, f.Name, f.DefaultUint16, f.Usage)
		case f.Uint32 != nil:
			cmd.PersistentFlags().Uint32Var(f.Uint32, f.Name, f.DefaultUint32, f.Usage)
		case f.Bool != nil:
			cmd.PersistentFlags().BoolVar(f.Bool, f.Name, f.DefaultBool, f.Usage)
		default:
			return errors.Errorf("flag %s has no value target", f.Name)
		}
	}
	return nil
}

func (f *Flag) setDefault(raw string) error {
	switch {
	case f.String != nil:
		f.DefaultString = raw
	case f.Uint16 != nil:
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return err
		}
		f.DefaultUint16 = uint16(v)
	case f.Uint32 != nil:
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return err
		}
		f.DefaultUint32 = uint32(v)
	case f.Bool != nil:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		f.DefaultBool = v
	}
	return nil
}
