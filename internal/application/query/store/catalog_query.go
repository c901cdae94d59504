package store

import (
	"context"
	"errors"
	"log"
	"strings"

	"mihrab/internal/application/catalog"
	dto "mihrab/internal/application/query/store/dto"
	productdom "mihrab/internal/domain/product"
)

var ErrNotFound = errors.New("store query: not found")

// CatalogQuery is the storefront read side: it loads the product collection
// for a scope from the repository and derives the visible list through the
// catalog pipeline. The repository is the only data source; the pipeline
// never fetches.
type CatalogQuery struct {
	ProductRepo productdom.Repository
}

func NewCatalogQuery(productRepo productdom.Repository) *CatalogQuery {
	return &CatalogQuery{ProductRepo: productRepo}
}

// List returns the filtered, sorted listing for a scope.
// scope is a category slug, or "" for the whole shop.
func (q *CatalogQuery) List(ctx context.Context, scope string, f catalog.FilterState, sortBy catalog.SortOption) (dto.CatalogDTO, error) {
	if q == nil || q.ProductRepo == nil {
		return dto.CatalogDTO{}, errors.New("catalog query: product repo is nil")
	}

	scope = strings.TrimSpace(scope)

	var (
		products []productdom.Product
		err      error
	)
	if scope == "" {
		products, err = q.ProductRepo.List(ctx)
	} else {
		products, err = q.ProductRepo.ListByCategory(ctx, scope)
	}
	if err != nil {
		log.Printf("[catalog] list error scope=%q err=%v", scope, err)
		return dto.CatalogDTO{}, err
	}

	visible := catalog.Apply(products, f, sortBy)

	out := dto.CatalogDTO{
		Items: make([]dto.CatalogItemDTO, 0, len(visible)),
		Total: len(visible),
	}
	for _, p := range visible {
		out.Items = append(out.Items, toCatalogItemDTO(p))
	}
	return out, nil
}

// GetBySlug returns the product page view, or ErrNotFound.
func (q *CatalogQuery) GetBySlug(ctx context.Context, slug string) (dto.ProductDetailDTO, error) {
	if q == nil || q.ProductRepo == nil {
		return dto.ProductDetailDTO{}, errors.New("catalog query: product repo is nil")
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return dto.ProductDetailDTO{}, ErrNotFound
	}

	p, err := q.ProductRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("[catalog] getBySlug error slug=%q err=%v", slug, err)
		return dto.ProductDetailDTO{}, err
	}
	if p == nil {
		return dto.ProductDetailDTO{}, ErrNotFound
	}

	return dto.ProductDetailDTO{
		CatalogItemDTO: toCatalogItemDTO(*p),
		Description:    p.Description,
		Images:         p.Images,
	}, nil
}

func toCatalogItemDTO(p productdom.Product) dto.CatalogItemDTO {
	return dto.CatalogItemDTO{
		ID:              p.ID,
		Slug:            p.Slug,
		Name:            p.Name,
		Image:           p.PrimaryImage(),
		Price:           p.Price,
		CompareAtPrice:  p.CompareAtPrice,
		Sizes:           p.Sizes,
		Colors:          p.Colors,
		Sleeve:          string(p.Sleeve),
		Category:        p.Category,
		Featured:        p.Featured,
		InStock:         p.InStock,
		CreatedAtMillis: p.CreatedAtMillis,
	}
}
