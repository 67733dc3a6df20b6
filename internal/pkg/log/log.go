// Package log adds logging utilities.
package log

import (
	"strings"
	"time"

	"linematch/internal/pkg/config"

	"github.com/sirupsen/logrus"
)

// SetLogger sets the default logger's level and format.
func SetLogger(level string) {
	logrus.SetLevel(logrus.ErrorLevel)
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = time.RFC3339
	logrus.SetFormatter(customFormatter)
	customFormatter.FullTimestamp = true
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.ErrorLevel)
	}
}

// ConfigToFields summarises the effective server configuration for the
// startup log line.
func ConfigToFields(cfg *config.Config) logrus.Fields {
	return logrus.Fields{
		"linuxpath":       cfg.LinuxPath,
		"algorithm":       cfg.DefaultAlgorithm,
		"reread_on_query": cfg.RereadOnQuery,
		"addr":            cfg.Addr(),
		"max_payload":     cfg.MaxPayload,
		"ssl":             cfg.SSLEnabled,
	}
}
