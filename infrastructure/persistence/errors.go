package persistence

import "errors"

// ErrNotConfigured is returned by repositories whose backend was not reachable at startup.
var ErrNotConfigured = errors.New("store is not configured")
