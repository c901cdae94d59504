package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productdom "mihrab/internal/domain/product"
)

// ProductRepositoryFS is a Firestore-based implementation of the product repository.
//
// Collection design:
// - collection: products
// - docId: product id
//
// List order: createdAt asc, docId tie break - the storefront's "featured"
// sort depends on this baseline being stable.
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

// GetByID returns (nil, nil) when the product does not exist.
func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
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

	p := productFromData(snap.Ref.ID, snap.Data())
	return &p, nil
}

// GetBySlug returns (nil, nil) when no product carries the slug.
func (r *ProductRepositoryFS) GetBySlug(ctx context.Context, slug string) (*productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}

	iter := r.col().Where("slug", "==", slug).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p := productFromData(snap.Ref.ID, snap.Data())
	return &p, nil
}

func (r *ProductRepositoryFS) List(ctx context.Context) ([]productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}
	return r.listQuery(ctx, r.col().Query)
}

func (r *ProductRepositoryFS) ListByCategory(ctx context.Context, category string) ([]productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return []productdom.Product{}, nil
	}
	return r.listQuery(ctx, r.col().Where("category", "==", category))
}

func (r *ProductRepositoryFS) listQuery(ctx context.Context, q firestore.Query) ([]productdom.Product, error) {
	// stable baseline order (createdAt asc, docId tie break)
	iter := q.OrderBy("createdAt", firestore.Asc).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	out := []productdom.Product{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, productFromData(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}

func (r *ProductRepositoryFS) Create(ctx context.Context, p productdom.Product) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}
	if err := p.Validate(); err != nil {
		return err
	}

	// Create (not Set) so an existing docId fails instead of overwriting
	_, err := r.col().Doc(p.ID).Create(ctx, productToDoc(p))
	if status.Code(err) == codes.AlreadyExists {
		return productdom.ErrConflict
	}
	return err
}

func (r *ProductRepositoryFS) Update(ctx context.Context, id string, patch productdom.Patch) (*productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, productdom.ErrNotFound
	}

	updates := patchToUpdates(patch)
	if len(updates) > 0 {
		if _, err := r.col().Doc(id).Update(ctx, updates); err != nil {
			if status.Code(err) == codes.NotFound {
				return nil, productdom.ErrNotFound
			}
			return nil, err
		}
	}

	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, productdom.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type productDoc struct {
	Slug        string   `firestore:"slug"`
	Name        string   `firestore:"name"`
	Description string   `firestore:"description"`
	Images      []string `firestore:"images"`

	Price          int `firestore:"price"`
	CompareAtPrice int `firestore:"compareAtPrice"`

	Sizes  []string `firestore:"sizes"`
	Colors []string `firestore:"colors"`
	Sleeve string   `firestore:"sleeve"`

	Category string `firestore:"category"`
	Featured bool   `firestore:"featured"`
	InStock  bool   `firestore:"inStock"`

	CreatedAt time.Time `firestore:"createdAt"`
}

func productToDoc(p productdom.Product) productDoc {
	return productDoc{
		Slug:           p.Slug,
		Name:           p.Name,
		Description:    p.Description,
		Images:         p.Images,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Sizes:          p.Sizes,
		Colors:         p.Colors,
		Sleeve:         string(p.Sleeve),
		Category:       p.Category,
		Featured:       p.Featured,
		InStock:        p.InStock,
		CreatedAt:      time.UnixMilli(p.CreatedAtMillis).UTC(),
	}
}

// productFromData parses raw doc data tolerantly. Older docs store createdAt
// as a {seconds, nanos} map or a bare number; asEpochMillis normalizes all
// shapes here so sorting never branches on shape.
func productFromData(docID string, raw map[string]any) productdom.Product {
	if raw == nil {
		return productdom.Product{ID: docID}
	}

	p := productdom.Product{
		ID:              docID,
		Slug:            strings.TrimSpace(asString(raw["slug"])),
		Name:            asString(raw["name"]),
		Description:     asString(raw["description"]),
		Images:          asStringSlice(raw["images"]),
		Price:           asInt(raw["price"]),
		CompareAtPrice:  asInt(raw["compareAtPrice"]),
		Sizes:           asStringSlice(raw["sizes"]),
		Colors:          asStringSlice(raw["colors"]),
		Sleeve:          productdom.Sleeve(strings.TrimSpace(asString(raw["sleeve"]))),
		Category:        strings.TrimSpace(asString(raw["category"])),
		Featured:        asBool(raw["featured"]),
		InStock:         asBool(raw["inStock"]),
		CreatedAtMillis: asEpochMillis(raw["createdAt"]),
	}

	// legacy field name
	if p.CompareAtPrice == 0 {
		p.CompareAtPrice = asInt(raw["basePrice"])
	}
	return p
}

func patchToUpdates(patch productdom.Patch) []firestore.Update {
	var updates []firestore.Update
	if patch.Slug != nil {
		updates = append(updates, firestore.Update{Path: "slug", Value: strings.TrimSpace(*patch.Slug)})
	}
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.Images != nil {
		updates = append(updates, firestore.Update{Path: "images", Value: *patch.Images})
	}
	if patch.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: *patch.Price})
	}
	if patch.CompareAtPrice != nil {
		updates = append(updates, firestore.Update{Path: "compareAtPrice", Value: *patch.CompareAtPrice})
	}
	if patch.Sizes != nil {
		updates = append(updates, firestore.Update{Path: "sizes", Value: *patch.Sizes})
	}
	if patch.Colors != nil {
		updates = append(updates, firestore.Update{Path: "colors", Value: *patch.Colors})
	}
	if patch.Sleeve != nil {
		updates = append(updates, firestore.Update{Path: "sleeve", Value: string(*patch.Sleeve)})
	}
	if patch.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: strings.TrimSpace(*patch.Category)})
	}
	if patch.Featured != nil {
		updates = append(updates, firestore.Update{Path: "featured", Value: *patch.Featured})
	}
	if patch.InStock != nil {
		updates = append(updates, firestore.Update{Path: "inStock", Value: *patch.InStock})
	}
	return updates
}
