// Package lifecycle holds settings shared by components with start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start-up probes and graceful shutdown of each component.
const DefaultTimeout = 10 * time.Second
