package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	categorydom "mihrab/internal/domain/category"
)

// CategoryRepositoryFS implements category.Repository using Firestore.
//
// Collection design:
// - collection: categories
// - docId: category id
type CategoryRepositoryFS struct {
	Client *firestore.Client
}

func NewCategoryRepositoryFS(client *firestore.Client) *CategoryRepositoryFS {
	return &CategoryRepositoryFS{Client: client}
}

func (r *CategoryRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("categories")
}

// GetByID returns (nil, nil) when the category does not exist.
func (r *CategoryRepositoryFS) GetByID(ctx context.Context, id string) (*categorydom.Category, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("category_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var c categorydom.Category
	if err := snap.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = snap.Ref.ID
	return &c, nil
}

func (r *CategoryRepositoryFS) List(ctx context.Context) ([]categorydom.Category, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("category_repository_fs: firestore client is nil")
	}

	iter := r.col().OrderBy("displayOrder", firestore.Asc).
		OrderBy("slug", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	out := []categorydom.Category{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var c categorydom.Category
		if err := snap.DataTo(&c); err != nil {
			return nil, err
		}
		c.ID = snap.Ref.ID
		out = append(out, c)
	}
	return out, nil
}

func (r *CategoryRepositoryFS) Create(ctx context.Context, c categorydom.Category) error {
	if r == nil || r.Client == nil {
		return errors.New("category_repository_fs: firestore client is nil")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	_, err := r.col().Doc(c.ID).Create(ctx, c)
	return err
}

func (r *CategoryRepositoryFS) Update(ctx context.Context, id string, patch categorydom.Patch) (*categorydom.Category, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("category_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, categorydom.ErrNotFound
	}

	var updates []firestore.Update
	if patch.Slug != nil {
		updates = append(updates, firestore.Update{Path: "slug", Value: strings.TrimSpace(*patch.Slug)})
	}
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Image != nil {
		updates = append(updates, firestore.Update{Path: "image", Value: *patch.Image})
	}
	if patch.DisplayOrder != nil {
		updates = append(updates, firestore.Update{Path: "displayOrder", Value: *patch.DisplayOrder})
	}

	if len(updates) > 0 {
		if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, categorydom.ErrNotFound
			}
			return nil, err
		}
	}

	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, categorydom.ErrNotFound
	}
	return c, nil
}

func (r *CategoryRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("category_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
