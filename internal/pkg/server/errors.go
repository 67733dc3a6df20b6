package server

import "github.com/pkg/errors"

// ErrEmptyQuery indicates the peer closed the connection without sending any bytes.
var ErrEmptyQuery = errors.New("empty query")

// ErrUnterminatedQuery indicates the peer closed the connection before a line terminator arrived.
var ErrUnterminatedQuery = errors.New("query missing line terminator")

// ErrPayloadTooLarge indicates the query exceeded the maximum payload size.
var ErrPayloadTooLarge = errors.New("query exceeds maximum payload size")

// ErrNoStore indicates the server was built without a dataset store.
var ErrNoStore = errors.New("no dataset store configured")

// ErrNotListening indicates Serve was called before Listen.
var ErrNotListening = errors.New("server is not listening")
