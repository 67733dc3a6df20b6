package client

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds the dial and the wait for the response.
const DefaultTimeout = 10 * time.Second

// Response is the server's answer to a single query.
type Response struct {
	Matched bool
	Raw     string
	RTT     time.Duration
}

// Client sends one-shot queries to a running server.
type Client struct {
	addr      string
	tlsConfig *tls.Config
	timeout   time.Duration
}

// Cfg configures a Client.
type Cfg func(*Client) error

// WithServerAddr sets the server address to connect to.
func WithServerAddr(addr string) Cfg {
	return func(c *Client) error {
		c.addr = addr
		return nil
	}
}

// WithServerPort sets the server port to connect to on localhost.
func WithServerPort(p uint16) Cfg {
	return func(c *Client) error {
		c.addr = fmt.Sprintf("localhost:%d", p)
		return nil
	}
}

// WithTLSConfig makes the client dial over TLS.
func WithTLSConfig(cfg *tls.Config) Cfg {
	return func(c *Client) error {
		c.tlsConfig = cfg
		return nil
	}
}

// WithTimeout sets the dial and response timeout.
func WithTimeout(d time.Duration) Cfg {
	return func(c *Client) error {
		if d <= 0 {
			return errors.Errorf("timeout must be positive, got %s", d)
		}
		c.timeout = d
		return nil
	}
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfgs ...Cfg) (*Client, error) {
	client := &Client{
		timeout: DefaultTimeout,
	}
	for _, cfg := range cfgs {
		if err := cfg(client); err != nil {
			return nil, errors.Wrap(err, "apply Client cfg failed")
		}
	}
	if client.addr == "" {
		return nil, ErrNoServerAddr
	}
	return client, nil
}

// Query opens a connection, sends one line and waits for the verdict. The
// server closes the connection after responding; a close with no response
// line is a failure, never a NOT FOUND.
func (c *Client) Query(ctx context.Context, line string) (Response, error) {
	start := time.Now()
	conn, err := c.dial(ctx)
	if err != nil {
		return Response{}, errors.Wrapf(err, "dial %s failed", c.addr)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return Response{}, errors.Wrap(err, "set deadline failed")
	}

	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		return Response{}, errors.Wrap(err, "send query failed")
	}
	raw, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return Response{}, errors.Wrap(ErrNoResponse, err.Error())
	}

	resp := Response{
		Raw: strings.TrimRight(raw, "\r\n"),
		RTT: time.Since(start),
	}
	switch resp.Raw {
	case "STRING EXISTS":
		resp.Matched = true
	case "STRING NOT FOUND":
	default:
		return Response{}, errors.Wrapf(ErrUnexpectedResponse, "%q", resp.Raw)
	}
	return resp, nil
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	d := &net.Dialer{Timeout: c.timeout}
	if c.tlsConfig != nil {
		return (&tls.Dialer{NetDialer: d, Config: c.tlsConfig}).DialContext(ctx, "tcp", c.addr)
	}
	return d.DialContext(ctx, "tcp", c.addr)
}
