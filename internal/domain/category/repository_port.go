package category

import "context"

// Repository is the persistence port for categories.
//
// Storage (Firestore):
// - collection: categories
// - docId: category id
//
// List returns categories ordered by displayOrder asc, then slug.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]Category, error)

	Create(ctx context.Context, c Category) error
	Update(ctx context.Context, id string, patch Patch) (*Category, error)
	Delete(ctx context.Context, id string) error
}
