package apps

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"linematch/internal"
	"linematch/internal/pkg/client"
	"linematch/internal/pkg/config"
	"linematch/internal/pkg/tlsutil"
	"linematch/internal/pkg/validate"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ClientAppCfg configures a ClientApp.
type ClientAppCfg interface {
	ApplyClientApp(*ClientApp) error
}

// ClientApp sends a single query to a running server and prints the verdict.
type ClientApp struct {
	Host      string `validate:"required"`
	Port      uint16 `validate:"required"`
	UseTLS    bool
	CACert    string
	TimeoutMS uint32
}

// NewClientApp creates a new ClientApp.
func NewClientApp(cfgs ...ClientAppCfg) (*ClientApp, error) {
	app := &ClientApp{}
	for _, cfg := range cfgs {
		if err := cfg.ApplyClientApp(app); err != nil {
			return nil, errors.Wrap(err, "apply ClientApp cfg failed")
		}
	}
	if app.Host == "" {
		app.Host = "localhost"
	}
	if app.Port == 0 {
		app.Port = config.DefaultPort
	}
	if app.TimeoutMS == 0 {
		app.TimeoutMS = internal.ClientTimeoutMS
	}
	if err := validate.Validate().Struct(app); err != nil {
		return nil, errors.Wrap(err, "validate ClientApp failed")
	}
	return app, nil
}

// Run sends args[1] as the query. args[0] is the command name.
func (app *ClientApp) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return ErrMissingQuery
	}
	line := args[1]

	var tlsCfg *tls.Config
	if app.UseTLS {
		var err error
		tlsCfg, err = tlsutil.ClientConfig(app.CACert)
		if err != nil {
			return errors.Wrap(err, "create TLS config failed")
		}
	}
	c, err := client.NewClient(
		client.WithServerAddr(fmt.Sprintf("%s:%d", app.Host, app.Port)),
		client.WithTLSConfig(tlsCfg),
		client.WithTimeout(time.Duration(app.TimeoutMS)*time.Millisecond),
	)
	if err != nil {
		return errors.Wrap(err, "create client failed")
	}
	resp, err := c.Query(ctx, line)
	if err != nil {
		return errors.Wrap(err, "query failed")
	}
	logger.WithFields(logrus.Fields{
		"matched": resp.Matched,
		"rtt_ms":  float64(resp.RTT) / float64(time.Millisecond),
	}).Info("query completed")
	fmt.Println(resp.Raw)
	return nil
}
