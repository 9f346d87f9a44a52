package server

import "time"

// History and detail requests may wait on the upstream rate limiter and
// retries, so writes get more room than reads.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 45 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
