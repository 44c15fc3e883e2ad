package parallel

import "errors"

// ErrClosed is returned by Run when the pool was closed before every task could
// be scheduled.
var ErrClosed = errors.New("parallel: pool is closed")
