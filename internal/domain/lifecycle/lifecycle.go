// Package lifecycle holds shared constants for application start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown hooks such as the database ping
// and the HTTP server drain.
const DefaultTimeout = 10 * time.Second
