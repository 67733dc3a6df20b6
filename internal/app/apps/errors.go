package apps

import "github.com/pkg/errors"

// ErrMissingQuery indicates the client command was invoked without a query argument.
var ErrMissingQuery = errors.New("missing query argument")
