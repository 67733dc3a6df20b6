package config

import "github.com/pkg/errors"

// ErrBinaryWithReread indicates the config combines binary search with
// reread_on_query; binary search needs the sorted snapshot only the cached
// store builds.
var ErrBinaryWithReread = errors.New("default_algorithm binary requires reread_on_query false")
