package order

import "context"

// Repository is the persistence port for orders.
//
// Storage (Firestore):
// - collection: orders
// - docId: order id
type Repository interface {
	// GetByID returns ErrNotFound when the order does not exist.
	GetByID(ctx context.Context, id string) (*Order, error)

	// Create writes the order. The order id must be new; implementations
	// should fail rather than overwrite an existing doc.
	Create(ctx context.Context, o *Order) error

	// ListBySessionID returns the session's orders, newest first.
	ListBySessionID(ctx context.Context, sessionID string) ([]Order, error)
}
