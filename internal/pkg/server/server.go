package server

import (
	"context"
	"crypto/tls"
	"net"
	"sync"

	"linematch/internal/pkg/dataset"
	"linematch/internal/pkg/metrics"
	"linematch/internal/pkg/querylog"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// defaultMaxPayload caps request size when no explicit cap is configured.
const defaultMaxPayload = 1024

// Server accepts query connections and dispatches a handler per connection.
// The accept loop never blocks on handler work; every connection runs in its
// own goroutine and no bound is imposed on concurrent connections beyond the
// OS accept queue.
type Server struct {
	addr       string
	tlsConfig  *tls.Config
	store      dataset.Store
	maxPayload int
	queryLog   *querylog.Logger
	metrics    *metrics.Metrics

	mu       sync.Mutex
	listener net.Listener
}

// Cfg configures a Server.
type Cfg func(*Server) error

// WithAddr sets the address the server binds.
func WithAddr(addr string) Cfg {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithStore sets the dataset store queried per connection.
func WithStore(store dataset.Store) Cfg {
	return func(s *Server) error {
		s.store = store
		return nil
	}
}

// WithTLSConfig makes the listener a TLS listener.
func WithTLSConfig(cfg *tls.Config) Cfg {
	return func(s *Server) error {
		s.tlsConfig = cfg
		return nil
	}
}

// WithMaxPayload sets the request size cap in bytes.
func WithMaxPayload(n int) Cfg {
	return func(s *Server) error {
		if n <= 0 {
			return errors.Errorf("max payload must be positive, got %d", n)
		}
		s.maxPayload = n
		return nil
	}
}

// WithQueryLogger sets the per-query record logger.
func WithQueryLogger(l *querylog.Logger) Cfg {
	return func(s *Server) error {
		s.queryLog = l
		return nil
	}
}

// WithMetrics sets the query metrics. A nil value disables them.
func WithMetrics(m *metrics.Metrics) Cfg {
	return func(s *Server) error {
		s.metrics = m
		return nil
	}
}

// NewServer creates a new Server with the given configuration.
func NewServer(cfgs ...Cfg) (*Server, error) {
	server := &Server{
		maxPayload: defaultMaxPayload,
	}
	for _, cfg := range cfgs {
		if err := cfg(server); err != nil {
			return nil, errors.Wrap(err, "apply Server cfg failed")
		}
	}
	if server.store == nil {
		return nil, ErrNoStore
	}
	if server.queryLog == nil {
		server.queryLog = querylog.New(nil)
	}
	return server, nil
}

// Listen binds the listening socket.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s failed", s.addr)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	logger.WithFields(logrus.Fields{
		"addr": ln.Addr().String(),
		"tls":  s.tlsConfig != nil,
	}).Info("server listening")
	return nil
}

// Addr returns the bound listener address once Listen has succeeded.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until ctx is cancelled. Each accepted
// connection is handed to its own handler goroutine.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return ErrNotListening
	}
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			logger.WithError(err).Warn("accept failed")
			continue
		}
		h := newHandler(s.store, s.maxPayload, s.queryLog, s.metrics)
		go h.Handle(ctx, conn)
	}
}

// Run is Listen followed by Serve.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}
