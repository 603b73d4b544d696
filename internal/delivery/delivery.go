// Package delivery defines the contract every transport implementation
// (HTTP, workers) satisfies so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport surface.
type Delivery interface {
	// Serve blocks, serving until the context is cancelled or a fatal
	// error occurs.
	Serve(ctx context.Context) error
}
