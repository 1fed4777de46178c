// Package delivery holds the inbound adapters of the gateway.
package delivery

import "context"

// Delivery is an inbound adapter started by the application. Serve blocks until the
// adapter stops; shutdown is driven by fx lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
