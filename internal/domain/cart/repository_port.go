package cart

import "context"

// Repository is a persistence port for Cart.
//
// Storage recommendation (Firestore):
// - collection: carts
// - docId: sessionId
// - fields: items(array), createdAt, updatedAt, expiresAt
//
// Items shape:
// - line id: productId__size__color__sleeve (deterministic composite key,
//   "default" placeholder for unset facets)
//
// TTL:
// - Configure Firestore TTL on the "expiresAt" field.
// - expiresAt is refreshed on each cart mutation (handled by domain via touch()).
type Repository interface {
	// GetBySessionID returns the cart for the session.
	// Not-found policy: return (nil, nil) and let the application layer treat
	// nil as "empty cart".
	GetBySessionID(ctx context.Context, sessionID string) (*Cart, error)

	// Upsert saves the cart (create or update).
	Upsert(ctx context.Context, c *Cart) error

	// DeleteBySessionID deletes the cart for the session (e.g., after order).
	DeleteBySessionID(ctx context.Context, sessionID string) error
}
