// Package internal wires process-level flags and environment settings.
package internal

import (
	"linematch/internal/pkg/validate"

	"github.com/pkg/errors"
)

// Settings populated from flags and the environment by RegisterCommandFlags.
var (
	Env        string
	LogLevel   string
	ConfigPath string
	Host       string
	Port       uint16

	MetricsPort uint16

	ClientUseTLS    bool
	ClientCACert    string
	ClientTimeoutMS uint32
)

type envSettings struct {
	Env      string `validate:"omitempty,oneof=development test production"`
	LogLevel string `validate:"omitempty,oneof=trace debug info warn error"`
}

// ValidateEnv checks that the resolved process settings are usable.
func ValidateEnv() error {
	s := envSettings{
		Env:      Env,
		LogLevel: LogLevel,
	}
	return errors.Wrap(validate.Validate().Struct(s), "validate settings failed")
}
