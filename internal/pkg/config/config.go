// Package config loads the server configuration file.
//
// The file is YAML and carries the key contract of the original deployment:
// linuxpath, reread_on_query, default_algorithm, host, port, max_payload and
// the ssl_* keys. The loaded Config is immutable for the process lifetime;
// changing it requires a restart.
package config

import (
	"net"
	"os"
	"strconv"

	"linematch/internal/pkg/search"
	"linematch/internal/pkg/validate"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults applied before the file is parsed.
const (
	DefaultHost       = "0.0.0.0"
	DefaultPort       = 44445
	DefaultMaxPayload = 1024
)

// Config holds the validated server configuration.
type Config struct {
	// LinuxPath is the dataset file the line store reads.
	LinuxPath string `yaml:"linuxpath" validate:"required"`

	// RereadOnQuery selects the dynamic store: the dataset is re-read on
	// every query so external writes are visible without a restart.
	RereadOnQuery bool `yaml:"reread_on_query"`

	// DefaultAlgorithm is the search strategy selected at startup.
	DefaultAlgorithm search.Algorithm `yaml:"default_algorithm" validate:"required,oneof=set list mmap binary grep"`

	Host string `yaml:"host" validate:"required"`
	Port uint16 `yaml:"port" validate:"required"`

	// MaxPayload caps the request size in bytes; oversized queries are
	// rejected as protocol errors.
	MaxPayload int `yaml:"max_payload" validate:"gt=0"`

	SSLEnabled  bool   `yaml:"ssl_enabled"`
	SSLCertFile string `yaml:"ssl_certfile" validate:"required_if=SSLEnabled true"`
	SSLKeyFile  string `yaml:"ssl_keyfile" validate:"required_if=SSLEnabled true"`
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file failed")
	}
	cfg := &Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		MaxPayload:       DefaultMaxPayload,
		DefaultAlgorithm: search.AlgorithmSet,
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if err := validate.Validate().Struct(c); err != nil {
		return errors.Wrap(err, "validate config failed")
	}
	if c.RereadOnQuery && c.DefaultAlgorithm == search.AlgorithmBinary {
		return ErrBinaryWithReread
	}
	return nil
}

// Addr returns the host:port the server binds.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}
