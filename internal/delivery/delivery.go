// Package delivery defines the contract every transport adapter fulfills.
package delivery

import "context"

// Delivery is a running transport surface of the application. Serve blocks
// until the server stops; shutdown is driven by the application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
