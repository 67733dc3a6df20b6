package client

import "github.com/pkg/errors"

// ErrNoServerAddr indicates the client was built without a server address.
var ErrNoServerAddr = errors.New("no server address configured")

// ErrNoResponse indicates the server closed the connection without sending a
// response line. This is the server's failure signal and must not be treated
// as NOT FOUND.
var ErrNoResponse = errors.New("connection closed without a response")

// ErrUnexpectedResponse indicates the server sent something other than the
// two fixed response lines.
var ErrUnexpectedResponse = errors.New("unexpected response")
