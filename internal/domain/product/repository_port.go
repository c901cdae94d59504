package product

import "context"

// Repository is the persistence port for products.
//
// Storage (Firestore):
// - collection: products
// - docId: product id
//
// List/ListByCategory return the catalog baseline order: createdAt ascending,
// docId as tie break. The storefront's "featured" sort relies on this order
// being stable, so implementations must not return an unordered scan.
//
// Not-found policy:
// - GetByID / GetBySlug return (nil, nil) when the product does not exist.
// - List* return an empty slice, never an error, for an empty scope.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)

	List(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)

	Create(ctx context.Context, p Product) error
	Update(ctx context.Context, id string, patch Patch) (*Product, error)
	Delete(ctx context.Context, id string) error
}
