package apps

import (
	"context"
	"crypto/tls"
	"fmt"

	"linematch/internal"
	"linematch/internal/pkg/config"
	"linematch/internal/pkg/dataset"
	"linematch/internal/pkg/log"
	"linematch/internal/pkg/metrics"
	"linematch/internal/pkg/querylog"
	"linematch/internal/pkg/server"
	"linematch/internal/pkg/tlsutil"
	"linematch/internal/pkg/validate"
	"linematch/internal/pkg/watch"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// ServerAppCfg configures a ServerApp.
type ServerAppCfg interface {
	ApplyServerApp(*ServerApp) error
}

// ServerApp runs the query server described by the configuration file.
// Host, Port and MetricsPort, when set, override the file.
type ServerApp struct {
	ConfigPath  string `validate:"required"`
	Host        string
	Port        uint16
	MetricsPort uint16
}

// NewServerApp creates a new ServerApp.
func NewServerApp(cfgs ...ServerAppCfg) (*ServerApp, error) {
	app := &ServerApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyServerApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ServerApp cfg failed")
		}
	}
	if app.ConfigPath == "" {
		app.ConfigPath = internal.ConfigPath
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ServerApp failed")
	}
	return app, nil
}

// Run loads the configuration, builds the dataset store and serves until
// ctx is cancelled.
func (app *ServerApp) Run(ctx context.Context, _ []string) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return errors.Wrap(err, "load config failed")
	}
	// Flag overrides are applied once here; cfg is immutable afterwards.
	if app.Host != "" {
		cfg.Host = app.Host
	}
	if app.Port != 0 {
		cfg.Port = app.Port
	}
	logger.WithFields(log.ConfigToFields(cfg)).Info("starting server")

	store, err := dataset.New(cfg.LinuxPath, cfg.DefaultAlgorithm, cfg.RereadOnQuery)
	if err != nil {
		return errors.Wrap(err, "create dataset store failed")
	}

	var tlsCfg *tls.Config
	if cfg.SSLEnabled {
		tlsCfg, err = tlsutil.ServerConfig(cfg.SSLCertFile, cfg.SSLKeyFile)
		if err != nil {
			return errors.Wrap(err, "create TLS config failed")
		}
	}

	var m *metrics.Metrics
	if app.MetricsPort != 0 {
		m = metrics.New()
	}

	srv, err := server.NewServer(
		server.WithAddr(cfg.Addr()),
		server.WithStore(store),
		server.WithMaxPayload(cfg.MaxPayload),
		server.WithTLSConfig(tlsCfg),
		server.WithMetrics(m),
		server.WithQueryLogger(querylog.New(nil)),
	)
	if err != nil {
		return errors.Wrap(err, "create server failed")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	if !cfg.RereadOnQuery {
		// The snapshot never refreshes, so at least say so when the file
		// changes underneath it.
		w, err := watch.New(cfg.LinuxPath)
		if err != nil {
			logger.WithError(err).Warn("dataset watcher unavailable")
		} else {
			g.Go(func() error {
				return w.Run(ctx)
			})
		}
	}
	if m != nil {
		g.Go(func() error {
			return m.Serve(ctx, fmt.Sprintf("%s:%d", cfg.Host, app.MetricsPort))
		})
	}
	return errors.Wrap(g.Wait(), "run server failed")
}
